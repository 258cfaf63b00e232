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

// Branches and jumps. vm.Ctx.PC holds the address of the instruction
// currently executing (P) when these functions run; PCnext = P+4 is
// the address of the following instruction. Branch-delay slots are
// not modeled: the branch target (or fallthrough) is simply the next
// instruction the fetch-execute loop fetches.

func branchTarget(pcNext, imm uint32) uint32 {
	return pcNext + signExtendImm(imm)<<2
}

func beq(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	if vm.Ctx.R[in.rs] == vm.Ctx.R[in.rt] {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

func bne(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	if vm.Ctx.R[in.rs] != vm.Ctx.R[in.rt] {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

func blez(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	if int32(vm.Ctx.R[in.rs]) <= 0 {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

func bgtz(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	if int32(vm.Ctx.R[in.rs]) > 0 {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

func bgez(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	if int32(vm.Ctx.R[in.rs]) >= 0 {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

func bltz(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	if int32(vm.Ctx.R[in.rs]) < 0 {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

// bgezal and bltzal write the link register (PC+8) unconditionally
// before updating PC, whether or not the branch is taken.
func bgezal(vm *VM, in *Instruction) (flags, error) {
	link := vm.Ctx.PC + 8
	pcNext := vm.Ctx.PC + 4
	taken := int32(vm.Ctx.R[in.rs]) >= 0
	vm.Ctx.store(ra, link)
	if taken {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

func bltzal(vm *VM, in *Instruction) (flags, error) {
	link := vm.Ctx.PC + 8
	pcNext := vm.Ctx.PC + 4
	taken := int32(vm.Ctx.R[in.rs]) < 0
	vm.Ctx.store(ra, link)
	if taken {
		vm.Ctx.PC = branchTarget(pcNext, in.imm)
	} else {
		vm.Ctx.PC = pcNext
	}
	return flags{updatedPC: true}, nil
}

// j/jal target composition: (PCnext & 0xF0000000) | (target<<2)
func j(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	vm.Ctx.PC = pcNext&0xF0000000 | in.target<<2
	return flags{updatedPC: true}, nil
}

func jal(vm *VM, in *Instruction) (flags, error) {
	pcNext := vm.Ctx.PC + 4
	vm.Ctx.store(ra, vm.Ctx.PC+8)
	vm.Ctx.PC = pcNext&0xF0000000 | in.target<<2
	return flags{updatedPC: true}, nil
}

func jr(vm *VM, in *Instruction) (flags, error) {
	vm.Ctx.PC = vm.Ctx.R[in.rs]
	return flags{updatedPC: true}, nil
}
