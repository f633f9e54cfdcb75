package deck

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteText writes d in the deck-list line format, crypt first. Parsing the
// output yields the same names and quantities. Types survive except Token,
// which is written as [Unknown] and reads back as Action. Image URLs are not
// written; parsing regenerates them from names.
func WriteText(w io.Writer, d *Deck) error {
	bw := bufio.NewWriter(w)

	info := d.Info()
	if info.Name != "" {
		fmt.Fprintf(bw, "# %s\n", info.Name)
	}
	if info.Author != "" {
		fmt.Fprintf(bw, "# Author: %s\n", info.Author)
	}
	if info.Description != "" {
		for _, line := range strings.Split(info.Description, "\n") {
			fmt.Fprintf(bw, "# %s\n", strings.TrimRight(line, "\r"))
		}
	}

	sections := []struct {
		zone Zone
		size int
	}{
		{ZoneCrypt, d.CryptSize()},
		{ZoneLibrary, d.LibrarySize()},
	}
	for i, s := range sections {
		if i > 0 || info != (Info{}) {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "# %s (%d)\n", s.zone, s.size)
		for _, e := range d.Grouped(s.zone) {
			fmt.Fprintf(bw, "%dx %s [%s]\n", e.Quantity, e.Name, e.Type)
		}
	}

	return bw.Flush()
}
