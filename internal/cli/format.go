package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/marsadembi/portfolio/internal/contact"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// terminalNotifier prints flow alerts. Success goes to out, everything
// else to errOut.
type terminalNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n terminalNotifier) Notify(notice contact.Notice) {
	w := n.errOut
	if notice.Kind == contact.KindSuccess {
		w = n.out
	}
	fmt.Fprintln(w, notice.Message)
}

type terminalCelebrator struct {
	out io.Writer
}

func (c terminalCelebrator) Celebrate() {
	fmt.Fprintln(c.out, "🎉🎉🎉")
}
