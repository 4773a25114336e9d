// Command mrubyc is a thin host wrapping the vm package's New/CreateTask/
// Run surface (§6.2): load one compiled RITE02 file into a pool-backed VM
// and run it to completion.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dressupgeekout/mrubyc/vm"
)

func main() {
	poolSize := flag.Int("pool", 64*1024, "pool allocator size in bytes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-pool bytes] file.mrb\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mrubyc:", err)
		os.Exit(1)
	}

	env := vm.New(*poolSize)
	task, err := env.CreateTask(buf, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mrubyc:", err)
		os.Exit(1)
	}

	os.Exit(env.Run(task))
}
