package extractor

import (
	"encoding/json"
	"strings"
)

// notebookCell mirrors the subset of the Jupyter notebook format we read.
// The source field is either a single string or a list of line strings.
type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebookDoc struct {
	Cells []notebookCell `json:"cells"`
}

// notebookSource concatenates the sources of all code cells, in cell
// order, separated by newlines, producing a single parse unit. Non-code
// cells are ignored. Returns ok=false if the document is not valid
// notebook JSON.
func notebookSource(content []byte) ([]byte, bool) {
	var doc notebookDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, false
	}

	var sb strings.Builder
	for _, cell := range doc.Cells {
		if cell.CellType != "code" {
			continue
		}
		src, ok := cellSource(cell.Source)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(src)
	}
	return []byte(sb.String()), true
}

func cellSource(raw json.RawMessage) (string, bool) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, true
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, ""), true
	}
	return "", false
}
