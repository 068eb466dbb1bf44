package record

import "github.com/danmuck/pdbfold/internal/pdb/line"

// Record tags handled by this package.
const (
	TagCompnd = "COMPND"
	TagSource = "SOURCE"
	TagRevdat = "REVDAT"
	TagTitle  = "TITLE"
	TagKeywds = "KEYWDS"
	TagExpdta = "EXPDTA"
	TagAuthor = "AUTHOR"
)

var continuationCols = line.Field{Start: 8, End: 10}

func continuationLayout(tag string) line.Layout {
	return line.Layout{Tag: tag, Continuation: continuationCols, PayloadStart: 11}
}

var (
	CompndLayout = continuationLayout(TagCompnd)
	SourceLayout = continuationLayout(TagSource)
	TitleLayout  = continuationLayout(TagTitle)
	KeywdsLayout = continuationLayout(TagKeywds)
	ExpdtaLayout = continuationLayout(TagExpdta)
	AuthorLayout = continuationLayout(TagAuthor)

	// RevdatLayout carries modNum in cols 8-10 and the continuation in 11-12.
	RevdatLayout = line.Layout{
		Tag:          TagRevdat,
		EntryKey:     line.Field{Start: 8, End: 10},
		Continuation: line.Field{Start: 11, End: 12},
		PayloadStart: 13,
	}
)

// TextLayouts lists the plain text continuation records.
func TextLayouts() []line.Layout {
	return []line.Layout{TitleLayout, KeywdsLayout, ExpdtaLayout, AuthorLayout}
}
