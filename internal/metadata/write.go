package metadata

import (
	"fmt"
	"strings"

	"github.com/franz/corpus-pages/internal/util"
)

// TSVFilename is the name of the concatenated output table.
const TSVFilename = "concatenated_metadata.tsv"

// WriteTSV writes the aggregate to path. The known boolean columns must by
// now hold only tri-state values (empty/0/1); anything else aborts the
// write after reporting the offending column and values.
func (a *Aggregate) WriteTSV(path string) error {
	for _, column := range BooleanColumns {
		values, err := a.Frame.Col(column)
		if err != nil {
			continue
		}
		if err := checkTriState(column, values); err != nil {
			return err
		}
		util.DebugLog("Transformed booleans in the column %s to integers", column)
	}
	if err := a.Frame.WriteFile(path); err != nil {
		return err
	}
	util.InfoLog("Concatenated metadata written to %s", path)
	return nil
}

func checkTriState(column string, values []string) error {
	var bad []string
	for _, v := range values {
		if v != "" && v != "0" && v != "1" {
			bad = append(bad, fmt.Sprintf("%q", v))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	util.ErrorLog("COLUMN %q", column)
	util.ErrorLog("Unconvertible values: %s", strings.Join(bad, ", "))
	return fmt.Errorf("%w: column %q holds non-boolean values %s",
		util.ErrBadBoolean, column, strings.Join(bad, ", "))
}
