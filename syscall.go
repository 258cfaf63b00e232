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

package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

const (
	sysPrintInt    = 1
	sysPrintString = 4
	sysReadInt     = 5
	sysReadString  = 8
	sysExit        = 10
)

// syscall_ is named with a trailing underscore to avoid colliding with
// the stdlib syscall package; it implements the SYSCALL instruction
// itself (the R-type opcode/funct pair), dispatching on the number in
// v0.
func syscall_(vm *VM, in *Instruction) (flags, error) {
	switch num := vm.Ctx.R[v0]; num {
	case sysPrintInt:
		fmt.Fprintf(vm.Stdout, "%d\n", int32(vm.Ctx.R[a0]))
	case sysPrintString:
		if err := printString(vm); err != nil {
			return flags{}, err
		}
	case sysReadInt:
		n, err := readInt(vm)
		if err != nil {
			return flags{}, err
		}
		vm.Ctx.store(v0, uint32(n))
	case sysReadString:
		if err := readString(vm); err != nil {
			return flags{}, err
		}
	case sysExit:
		return flags{}, exitErr
	default:
		log.Warn("unrecognized syscall, skipping", "number", num, "pc", fmt.Sprintf("%#x", vm.Ctx.PC))
	}
	return flags{}, nil
}

// printString walks guest memory byte by byte starting at a0 until it
// finds a NUL terminator, emitting each byte read to stdout but not
// the terminator itself. The pointer in a0 is a guest address, never
// dereferenced directly as a host pointer.
func printString(vm *VM) error {
	addr := vm.Ctx.R[a0]
	for {
		b, err := vm.Mem.fetchByte(addr)
		if err != nil {
			return err
		}
		if b == 0 {
			return nil
		}
		fmt.Fprintf(vm.Stdout, "%c", b)
		addr++
	}
}

// readInt reads one signed decimal integer from stdin.
func readInt(vm *VM) (int32, error) {
	var n int32
	if _, err := fmt.Fscan(vm.Stdin, &n); err != nil {
		return 0, fmt.Errorf("read_int: %w", err)
	}
	return n, nil
}

// readString reads up to a1-1 bytes from stdin into guest memory
// starting at a0 and NUL-terminates the result.
func readString(vm *VM) error {
	addr := vm.Ctx.R[a0]
	max := int(vm.Ctx.R[a1])
	if max <= 0 {
		return nil
	}
	i := 0
	for ; i < max-1; i++ {
		b, err := vm.Stdin.ReadByte()
		if err != nil || b == '\n' {
			break
		}
		if err := vm.Mem.storeByte(addr+uint32(i), b); err != nil {
			return err
		}
	}
	return vm.Mem.storeByte(addr+uint32(i), 0)
}
