package outwriter

import (
	"fmt"
	"io"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/internal/sarif"
)

// outputFileMode is the permission used for every generated file.
const outputFileMode = 0o644

// writeWithFile handles the common pattern of writing a finished payload to
// its destination and announcing it. The payload is fully built before this
// point so a failed run never leaves a partial file behind.
func writeWithFile(notice io.Writer, outputFile string, data []byte, successMsg string) error {
	if err := contract.WriteFileAtomic(outputFile, data, outputFileMode); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(notice, "💾 %s to %s\n", successMsg, outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoded, err := sarif.MarshalIndent(data)
	if err != nil {
		return err
	}
	_, err = w.Write(encoded)
	return err
}
