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

// Register conventions used at the syscall boundary. These are the
// only register numbers the simulator needs to know by name;
// everything else is addressed by number from the decoded instruction.
const (
	zero = 0
	v0   = 2
	a0   = 4
	a1   = 5
	sp   = 29
	ra   = 31
)

// Context is the MIPS architectural state: the general-purpose
// registers, the HI/LO multiply/divide result registers, and the
// program counter.
type Context struct {
	R  [32]uint32
	HI uint32
	LO uint32
	PC uint32
}

// store writes val to register rd, except that writes to R[0] are
// always discarded: the zero register reads as zero at every
// observation point.
func (c *Context) store(rd, val uint32) {
	if rd == zero {
		return
	}
	c.R[rd] = val
}

// RegNames maps register numbers to their MIPS ABI names, used by the
// trace/dump-regs renderer in vm.go.
var RegNames = [32]string{
	0: "zero", 1: "at",
	2: "v0", 3: "v1",
	4: "a0", 5: "a1", 6: "a2", 7: "a3",
	8: "t0", 9: "t1", 10: "t2", 11: "t3", 12: "t4", 13: "t5", 14: "t6", 15: "t7",
	16: "s0", 17: "s1", 18: "s2", 19: "s3", 20: "s4", 21: "s5", 22: "s6", 23: "s7",
	24: "t8", 25: "t9",
	26: "k0", 27: "k1",
	28: "gp", 29: "sp", 30: "fp", 31: "ra",
}
