// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// mipsim is a user-mode instruction-set simulator for little-endian
// 32-bit MIPS-I executables packaged as ELF files. It loads a
// statically linked MIPS binary, maps its loadable segments into a
// simulated virtual address space, establishes a user stack, and
// interprets the instruction stream until the program exits via a
// simulated system call.
//
//	mipsim path/to/program
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
)

var (
	maxSteps = flag.Int("max-steps", 100_000_000, "Maximum number of instructions to execute before giving up")
	trace    = flag.Bool("trace", false, "Print each decoded instruction before executing it")
	dumpRegs = flag.Bool("dump-regs", false, "Include the register file in step traces and fault reports")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mipsim path/to/program")
		os.Exit(2)
	}
	path := flag.Arg(0)

	mem, ctx, err := Load(path)
	if err != nil {
		log.Crit("can't load program", "path", path, "err", err)
	}

	vm := NewVM(ctx, mem)
	vm.Stdin = bufio.NewReader(os.Stdin)
	vm.Stdout = os.Stdout
	if *trace {
		vm.Debug |= DebugInstr
	}
	if *dumpRegs {
		vm.Debug |= DebugRegs
	}

	if err := vm.Run(*maxSteps); err != nil && !IsExit(err) {
		vm.LogFault(err)
	}
}
