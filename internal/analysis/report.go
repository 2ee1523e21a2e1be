package analysis

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport prints a preview of per-plot NDVI values followed by the field
// summary and any plots under the stress threshold.
func WriteReport(w io.Writer, results []PlotIndex, previewCount int) {
	shown := previewCount
	if shown > len(results) {
		shown = len(results)
	}

	fmt.Fprintf(w, "Plot  NDVI (showing %d/%d)\n", shown, len(results))
	for i := 0; i < shown; i++ {
		p := results[i]
		fmt.Fprintf(w, "%7s  r=%03d c=%03d  %6.3f\n", p.PlotID, p.Row+1, p.Col+1, p.NDVI)
	}
	if shown < len(results) {
		fmt.Fprintf(w, "... %d more plots not shown\n", len(results)-shown)
	}

	st := Summarize(results)
	fmt.Fprintf(w, "\nField summary:\n")
	fmt.Fprintf(w, "mean=%.3f  min=%.3f  max=%.3f\n", st.Mean, st.Min, st.Max)
	if st.Undefined > 0 {
		fmt.Fprintf(w, "%d plots with undefined NDVI excluded\n", st.Undefined)
	}

	if stressed := StressedPlots(results, StressThreshold); len(stressed) > 0 {
		fmt.Fprintf(w, "Potentially stressed plots: %s\n", strings.Join(stressed, ", "))
	} else {
		fmt.Fprintf(w, "No plots under the %.2f stress threshold.\n", StressThreshold)
	}
}
