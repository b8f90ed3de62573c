// Package gantt builds and renders modulation-plan timeline charts: each
// tonicized key of a movement becomes a horizontal bar spanning the
// measures in which it governs the harmony.
package gantt

import (
	"fmt"

	"github.com/franz/corpus-pages/internal/annot"
	"github.com/franz/corpus-pages/internal/pitch"
)

// Resource categories of chart intervals, used for coloring and grouping.
const (
	ResourceLocal          = "local"
	ResourceApplied        = "applied"
	ResourceTonicOfApplied = "tonic of adjacent applied chord(s)"
)

// DefaultColors maps resource categories to their chart colors.
var DefaultColors = map[string]string{
	ResourceApplied:        "rgb(228,26,28)",
	ResourceLocal:          "rgb(55,126,184)",
	ResourceTonicOfApplied: "rgb(77,175,74)",
}

// Interval is one labeled time span of a modulation plan. Start and
// Finish are fractional measure positions. The tonicized key is carried
// in all three axis representations at once; the chart axis picks one.
type Interval struct {
	Start, Finish float64
	Resource      string
	Semitones     int
	Fifths        int
	Numeral       string
	Description   string
}

// BuildData derives the modulation-plan intervals of a score from its
// expanded annotation table: contiguous local-key segments, applied
// (tonicized) chords, and chords that are the tonic of an adjacent
// applied chord.
func BuildData(table *annot.Table) ([]Interval, error) {
	n := table.Frame.Nrow()
	if n == 0 {
		return nil, nil
	}
	positions, err := table.Positions()
	if err != nil {
		return nil, err
	}
	lastMN, err := table.LastMN()
	if err != nil {
		return nil, err
	}
	// The plan runs through the measure after the last one
	scoreEnd := float64(lastMN + 1)
	globalMinor := pitch.IsMinor(table.GlobalKey())

	localKeys, err := table.Frame.Col(annot.ColLocalKey)
	if err != nil {
		return nil, fmt.Errorf("annotation table: %w", err)
	}
	numerals, _ := table.Frame.Col(annot.ColNumeral)
	relRoots, _ := table.Frame.Col(annot.ColRelativeRoot)

	var intervals []Interval
	for start := 0; start < n; {
		end := start
		for end+1 < n && localKeys[end+1] == localKeys[start] {
			end++
		}
		segmentFinish := scoreEnd
		if end+1 < n {
			segmentFinish = positions[end+1]
		}
		segment, err := segmentIntervals(segmentData{
			localKey:  localKeys[start],
			rows:      rowRange{start, end},
			positions: positions,
			finish:    segmentFinish,
			numerals:  numerals,
			relRoots:  relRoots,
			rootMinor: globalMinor,
			totalRows: n,
		})
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, segment...)
		start = end + 1
	}
	return intervals, nil
}

type rowRange struct{ first, last int }

type segmentData struct {
	localKey  string
	rows      rowRange
	positions []float64
	finish    float64
	numerals  []string
	relRoots  []string
	rootMinor bool
	totalRows int
}

// segmentIntervals emits the intervals contributed by one local-key
// segment: the segment itself plus any applied chords inside it.
func segmentIntervals(seg segmentData) ([]Interval, error) {
	localFifths, err := pitch.RomanToFifths(seg.localKey, seg.rootMinor)
	if err != nil {
		return nil, fmt.Errorf("localkey %q: %w", seg.localKey, err)
	}
	localMinor := pitch.IsMinorNumeral(seg.localKey)

	intervals := []Interval{{
		Start:     seg.positions[seg.rows.first],
		Finish:    seg.finish,
		Resource:  ResourceLocal,
		Fifths:    localFifths,
		Semitones: pitch.FifthsToPC(localFifths),
		Numeral:   seg.localKey,
	}}

	for i := seg.rows.first; i <= seg.rows.last; i++ {
		rowFinish := seg.finish
		if i+1 < seg.totalRows {
			rowFinish = seg.positions[i+1]
		}

		numeral, resource := "", ""
		switch {
		case seg.relRoots != nil && seg.relRoots[i] != "":
			numeral, resource = seg.relRoots[i], ResourceApplied
		case seg.numerals != nil && seg.numerals[i] != "" && adjacentRelRoot(seg, i) == seg.numerals[i]:
			numeral, resource = seg.numerals[i], ResourceTonicOfApplied
		default:
			continue
		}

		fifths, err := pitch.RomanToFifths(numeral, localMinor)
		if err != nil {
			return nil, fmt.Errorf("numeral %q in localkey %q: %w", numeral, seg.localKey, err)
		}
		fifths += localFifths
		intervals = append(intervals, Interval{
			Start:       seg.positions[i],
			Finish:      rowFinish,
			Resource:    resource,
			Fifths:      fifths,
			Semitones:   pitch.FifthsToPC(fifths),
			Numeral:     numeral + "/" + seg.localKey,
			Description: resource,
		})
	}
	return intervals, nil
}

// adjacentRelRoot returns the relativeroot of a neighboring row inside
// the same segment, preferring the previous one, or "" when neither
// neighbor applies a chord.
func adjacentRelRoot(seg segmentData, i int) string {
	if seg.relRoots == nil {
		return ""
	}
	if i > seg.rows.first && seg.relRoots[i-1] != "" {
		return seg.relRoots[i-1]
	}
	if i < seg.rows.last && seg.relRoots[i+1] != "" {
		return seg.relRoots[i+1]
	}
	return ""
}
