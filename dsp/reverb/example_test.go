package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/reverb"
)

func ExampleMapDecayTime() {
	for _, s := range []float64{0.1, 2, 8, 12, 25} {
		fmt.Printf("%5.1f s -> %.4f\n", s, reverb.MapDecayTime(s))
	}
	// Output:
	//   0.1 s -> 0.1000
	//   2.0 s -> 0.3044
	//   8.0 s -> 0.9500
	//  12.0 s -> 0.9626
	//  25.0 s -> 0.9770
}

func ExampleReverb() {
	r, err := reverb.New(48000)
	if err != nil {
		panic(err)
	}
	r.SetCoefficients(reverb.Coefficients{
		RoomSize: reverb.MapDecayTime(3),
		Damping:  0.5,
		WetLevel: 0.33,
		DryLevel: 0.67,
		Width:    1,
	})

	left := make([]float64, 256)
	right := make([]float64, 256)
	left[0] = 1
	r.ProcessStereo(left, right)

	fmt.Println(len(left), len(right))
	// Output: 256 256
}
