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

// mult/multu/div/divu write their results to HI/LO, never to a GPR
// via rd.

func mult(vm *VM, in *Instruction) (flags, error) {
	p := int64(int32(vm.Ctx.R[in.rs])) * int64(int32(vm.Ctx.R[in.rt]))
	vm.Ctx.HI = uint32(uint64(p) >> 32)
	vm.Ctx.LO = uint32(uint64(p))
	return flags{}, nil
}

func multu(vm *VM, in *Instruction) (flags, error) {
	p := uint64(vm.Ctx.R[in.rs]) * uint64(vm.Ctx.R[in.rt])
	vm.Ctx.HI = uint32(p >> 32)
	vm.Ctx.LO = uint32(p)
	return flags{}, nil
}

// div leaves HI/LO unmodified on division by zero rather than
// crashing the simulator; the result of dividing by zero is
// unspecified (decision recorded in DESIGN.md).
func div(vm *VM, in *Instruction) (flags, error) {
	if int32(vm.Ctx.R[in.rt]) == 0 {
		return flags{}, nil
	}
	vm.Ctx.LO = uint32(int32(vm.Ctx.R[in.rs]) / int32(vm.Ctx.R[in.rt]))
	vm.Ctx.HI = uint32(int32(vm.Ctx.R[in.rs]) % int32(vm.Ctx.R[in.rt]))
	return flags{}, nil
}

func divu(vm *VM, in *Instruction) (flags, error) {
	if vm.Ctx.R[in.rt] == 0 {
		return flags{}, nil
	}
	vm.Ctx.LO = vm.Ctx.R[in.rs] / vm.Ctx.R[in.rt]
	vm.Ctx.HI = vm.Ctx.R[in.rs] % vm.Ctx.R[in.rt]
	return flags{}, nil
}

func mfhi(vm *VM, in *Instruction) (flags, error) {
	vm.Ctx.store(in.rd, vm.Ctx.HI)
	return flags{}, nil
}

func mflo(vm *VM, in *Instruction) (flags, error) {
	vm.Ctx.store(in.rd, vm.Ctx.LO)
	return flags{}, nil
}
