package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/measure/level"
)

func ExampleCalculate() {
	s := level.Calculate([]float64{0.5, -0.5, 0.5, -0.5})
	fmt.Printf("peak %.1f dBFS, rms %.1f dBFS\n", s.PeakDB, s.RMSDB)
	// Output: peak -6.0 dBFS, rms -6.0 dBFS
}
