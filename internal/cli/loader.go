package cli

import (
	"fmt"
	"os"

	"github.com/roach88/airdq/internal/record"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // Input file read error
	ErrCodeBadJSON     = "E003" // Input is not valid JSON
	ErrCodeNoRecords   = "E004" // Missing or ill-typed top-level records array
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBadRecord   = "E006" // Element of records is not an object
	ErrCodeWriteFailed = "E007" // Output file write error
	ErrCodeBadRules    = "E008" // Rules file unreadable or invalid
)

// LoadError represents a structural error while loading the input document.
// Structural errors are fatal: the run aborts with no output file.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDocument reads and decodes the input document at path.
//
// The document must be a JSON object with a top-level "records" key bound
// to an array of objects. Any key set inside a record is accepted - no
// schema is enforced at load time. Returns the full document and the
// records array.
func LoadDocument(path string) (record.Object, record.Array, *LoadError) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input file not found: %s", path)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	v, err := record.Decode(data)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeBadJSON, Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}

	doc, ok := v.(record.Object)
	if !ok {
		return nil, nil, &LoadError{Code: ErrCodeNoRecords, Message: fmt.Sprintf("%s: top-level JSON value is not an object", path)}
	}

	rawRecords, ok := doc["records"]
	if !ok {
		return nil, nil, &LoadError{Code: ErrCodeNoRecords, Message: fmt.Sprintf("%s: no top-level 'records' array", path)}
	}

	records, ok := rawRecords.(record.Array)
	if !ok {
		return nil, nil, &LoadError{Code: ErrCodeNoRecords, Message: fmt.Sprintf("%s: 'records' is not an array", path)}
	}

	for i, elem := range records {
		if _, ok := elem.(record.Object); !ok {
			return nil, nil, &LoadError{Code: ErrCodeBadRecord, Message: fmt.Sprintf("%s: records[%d] is not an object", path, i)}
		}
	}

	return doc, records, nil
}
