package git

import (
	"bytes"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	markerOurs   = "<<<<<<< "
	markerSep    = "======="
	markerTheirs = ">>>>>>> "
)

// hunk replaces base lines [start, end) with lines.
type hunk struct {
	start int
	end   int
	lines []string
}

// splitLines splits s after every newline. A trailing line without a newline
// is kept as is.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// lineHunks lists the line-level changes that turn base into other.
func lineHunks(base, other string) []hunk {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(base, other)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var (
		hunks   []hunk
		pos     int
		current *hunk
	)
	flush := func() {
		if current != nil {
			hunks = append(hunks, *current)
			current = nil
		}
	}
	open := func() {
		if current == nil {
			current = &hunk{start: pos, end: pos}
		}
	}

	for _, d := range diffs {
		n := len(splitLines(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			pos += n
		case diffmatchpatch.DiffDelete:
			open()
			pos += n
			current.end = pos
		case diffmatchpatch.DiffInsert:
			open()
			current.lines = append(current.lines, splitLines(d.Text)...)
		}
	}
	flush()

	return hunks
}

// applyHunks rebuilds base lines [start, end) with the given hunks applied.
func applyHunks(base []string, start, end int, hunks []hunk) []string {
	var out []string

	pos := start
	for _, h := range hunks {
		out = append(out, base[pos:h.start]...)
		out = append(out, h.lines...)
		pos = h.end
	}

	return append(out, base[pos:end]...)
}

// merge3 merges the changes ours and theirs made to base. Changes that overlap
// or touch are a conflict unless both sides made the same change; conflicts
// are written with markers and reported.
func merge3(base, ours, theirs, label string) (string, bool) {
	baseLines := splitLines(base)
	oursHunks := lineHunks(base, ours)
	theirsHunks := lineHunks(base, theirs)

	var (
		out      strings.Builder
		conflict bool
		pos      int
		i, j     int
	)

	for i < len(oursHunks) || j < len(theirsHunks) {
		var fromOurs, fromTheirs []hunk

		// seed the cluster with the earliest hunk
		if j >= len(theirsHunks) || (i < len(oursHunks) && oursHunks[i].start <= theirsHunks[j].start) {
			fromOurs = append(fromOurs, oursHunks[i])
			i++
		} else {
			fromTheirs = append(fromTheirs, theirsHunks[j])
			j++
		}

		start := min(firstStart(fromOurs), firstStart(fromTheirs))
		end := max(lastEnd(fromOurs), lastEnd(fromTheirs))

		for {
			if i < len(oursHunks) && oursHunks[i].start <= end {
				fromOurs = append(fromOurs, oursHunks[i])
				end = max(end, oursHunks[i].end)
				i++
				continue
			}
			if j < len(theirsHunks) && theirsHunks[j].start <= end {
				fromTheirs = append(fromTheirs, theirsHunks[j])
				end = max(end, theirsHunks[j].end)
				j++
				continue
			}
			break
		}

		writeLines(&out, baseLines[pos:start])

		oursSide := applyHunks(baseLines, start, end, fromOurs)
		theirsSide := applyHunks(baseLines, start, end, fromTheirs)

		switch {
		case len(fromTheirs) == 0:
			writeLines(&out, oursSide)
		case len(fromOurs) == 0:
			writeLines(&out, theirsSide)
		case slices.Equal(oursSide, theirsSide):
			writeLines(&out, oursSide)
		default:
			conflict = true
			out.WriteString(markerOurs + "HEAD\n")
			writeTerminated(&out, oursSide)
			out.WriteString(markerSep + "\n")
			writeTerminated(&out, theirsSide)
			out.WriteString(markerTheirs + label + "\n")
		}

		pos = end
	}

	writeLines(&out, baseLines[pos:])

	return out.String(), conflict
}

func firstStart(hunks []hunk) int {
	if len(hunks) == 0 {
		return int(^uint(0) >> 1)
	}

	return hunks[0].start
}

func lastEnd(hunks []hunk) int {
	if len(hunks) == 0 {
		return -1
	}

	return hunks[len(hunks)-1].end
}

func writeLines(out *strings.Builder, lines []string) {
	for _, l := range lines {
		out.WriteString(l)
	}
}

// writeTerminated writes lines and makes sure the output ends with a newline,
// so that a following marker starts on its own line.
func writeTerminated(out *strings.Builder, lines []string) {
	writeLines(out, lines)
	if len(lines) > 0 && !strings.HasSuffix(lines[len(lines)-1], "\n") {
		out.WriteString("\n")
	}
}

func isBinary(data []byte) bool {
	const sniff = 8000

	return bytes.IndexByte(data[:min(len(data), sniff)], 0) >= 0
}
