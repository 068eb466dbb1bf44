package config

import (
	"fmt"
	"os"
)

func Template() string {
	return template
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const template = `# pdbfold configuration
workers = 4
format = "json"
strict = false
fail_fast = false
log_level = "info"
metrics_textfile = ""

# Empty parses every supported record.
records = ["COMPND", "SOURCE", "REVDAT", "TITLE", "KEYWDS", "EXPDTA", "AUTHOR"]
`
