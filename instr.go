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

import "fmt"

// Instruction is a single decoded 32-bit MIPS-I word. Every field below
// is populated by Decode regardless of which of the three formats
// (R/I/J) the opcode uses; execution functions read only the fields
// that apply to them.
type Instruction struct {
	raw    uint32
	fn     func(*VM, *Instruction) (flags, error)
	name   string
	op     uint32 // opcode[31:26]
	rs     uint32 // rs[25:21]
	rt     uint32 // rt[20:16]
	rd     uint32 // rd[15:11]
	shamt  uint32 // shamt[10:6]
	funct  uint32 // funct[5:0]
	imm    uint32 // imm[15:0], not yet sign/zero extended
	target uint32 // addr[25:0], J-type
}

// flags are returned by execution functions to tell the Fetch-Execute
// Loop what the instruction already did, so the loop doesn't also do
// it: exactly one PC update happens per instruction.
type flags struct {
	updatedPC bool
}

func (in *Instruction) String() string {
	return fmt.Sprintf("[ %#08x %s rs=%d rt=%d rd=%d shamt=%d funct=%#x imm=%d(%#x) target=%#x ]",
		in.raw, in.name, in.rs, in.rt, in.rd, in.shamt, in.funct, int32(in.imm), in.imm, in.target)
}
