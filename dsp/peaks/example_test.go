package peaks_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-raman/dsp/peaks"
)

func ExampleTopProminent() {
	spectrum := make([]float64, 100)
	for i := range spectrum {
		x := float64(i)
		spectrum[i] = math.Exp(-(x-30)*(x-30)/18) + 0.5*math.Exp(-(x-70)*(x-70)/18)
	}

	indices, err := peaks.TopProminent(spectrum, 2, 5, peaks.DefaultMinProminence)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(indices)
	// Output:
	// [30 70]
}
