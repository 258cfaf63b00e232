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
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/ethereum/go-ethereum/log"
)

// Debug is a set of flags controlling what state the VM prints and
// when.
type Debug uint32

const (
	DebugInstr = Debug(1 << iota) // Print the decoded instruction before executing it.
	DebugStep                     // Print the full VM state after every step.
	DebugRegs                     // Include the register file in state dumps.
)

// VM executes MIPS-I programs by interpreting one instruction at a
// time.
type VM struct {
	Ctx   *Context
	Mem   *MemoryImage
	Debug Debug
	Steps int

	LastPC    uint32
	LastInstr *Instruction

	Stdin  *bufio.Reader
	Stdout io.Writer
}

// NewVM returns a VM ready to execute the program described by ctx and
// mem. Stdin/Stdout default to nil and must be set by the caller
// (main.go wires them to os.Stdin/os.Stdout; tests wire them to
// in-memory buffers).
func NewVM(ctx *Context, mem *MemoryImage) *VM {
	return &VM{Ctx: ctx, Mem: mem}
}

// Run executes up to n instructions. It returns exitErr (check with
// IsExit) when the guest executes the exit syscall, or a fatal error
// (*MemoryFault, *DecodeFault) if the Memory Image or Decoder can't
// service the current instruction.
func (vm *VM) Run(n int) error {
	for i := 0; i < n; i++ {
		if vm.Ctx.R[zero] != 0 {
			// Enforced by Context.store, but checked here too in case
			// something wrote R[0] outside of it (e.g. a future loader).
			vm.Ctx.R[zero] = 0
		}

		raw, err := vm.Mem.fetchWord(vm.Ctx.PC)
		if err != nil {
			return fmt.Errorf("run(%d/%d): %w", i+1, n, err)
		}
		in, err := Decode(vm.Ctx.PC, raw)
		if err != nil {
			return fmt.Errorf("run(%d/%d): %w", i+1, n, err)
		}
		vm.LastPC = vm.Ctx.PC
		vm.LastInstr = in
		if vm.Debug&DebugStep != 0 {
			fmt.Println(vm)
		} else if vm.Debug&DebugInstr != 0 {
			fmt.Println(in)
		}

		out, err := in.fn(vm, in)
		if IsExit(err) {
			return err
		}
		if err != nil {
			return fmt.Errorf("run(%d/%d) at pc=%#x (%s): %w", i+1, n, vm.LastPC, in.name, err)
		}
		vm.Steps++
		if !out.updatedPC {
			vm.Ctx.PC += 4
		}
		if vm.Ctx.PC%4 != 0 {
			return fmt.Errorf("run(%d/%d): pc %#x is not word-aligned after %s", i+1, n, vm.Ctx.PC, in.name)
		}
	}
	return nil
}

// LogFault renders the VM's last-known state to the structured logger
// at critical severity and terminates the process.
func (vm *VM) LogFault(err error) {
	log.Crit("fatal simulation error", "err", err, "pc", fmt.Sprintf("%#x", vm.LastPC), "steps", vm.Steps, "state", vm.String())
}

func (vm VM) String() string {
	data := map[string]interface{}{
		"PC":    vm.LastPC,
		"Steps": vm.Steps,
		"HI":    vm.Ctx.HI,
		"LO":    vm.Ctx.LO,
	}
	if vm.LastInstr != nil {
		data["Instr"] = vm.LastInstr
	}
	if vm.Debug&DebugRegs != 0 {
		reg := &strings.Builder{}
		w := tabwriter.NewWriter(reg, 0, 0, 2, ' ', tabwriter.AlignRight)
		for i := 0; i < len(vm.Ctx.R); {
			const cols = 4
			for j := 0; i < len(vm.Ctx.R) && j < cols; i, j = i+1, j+1 {
				fmt.Fprintf(w, "%s(%d):\t%#x\t\t\t", RegNames[i], i, vm.Ctx.R[i])
			}
			fmt.Fprintln(w, "")
		}
		w.Flush()
		data["Regs"] = reg
	}

	buf := new(strings.Builder)
	if err := dbgTmpl.Execute(buf, data); err != nil {
		panic(fmt.Sprintf("can't print VM as string: %v", err))
	}
	return buf.String()
}

var dbgTmpl = template.Must(template.New("").Parse(`=========== MIPS VM ============
Steps: {{.Steps}}
PC:    {{printf "%#x" .PC}} ({{.PC}})
HI:    {{printf "%#x" .HI}}
LO:    {{printf "%#x" .LO}}
{{with .Instr}}INSTR: {{.}}
{{end}}{{with .Regs}}
[ REGISTERS ]
{{.}}
{{end}}`))
