// SPDX-License-Identifier: EPL-2.0

package sox_test

import (
	"fmt"
	"log"

	"github.com/wen501271303/sox"
	"github.com/wen501271303/sox/format"
)

func ExampleNewContext() {
	ctx := sox.NewContext()

	sig := format.SignalInfo{Rate: 8000, Channels: 1, Precision: 16}
	out, err := ctx.OpenWrite("ignored", sig, nil, &format.WriteOptions{Type: "null"})
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	n, err := out.Write(make([]format.Sample, 128))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d samples at %g Hz\n", n, out.Signal.Rate)
	// Output: wrote 128 samples at 8000 Hz
}
