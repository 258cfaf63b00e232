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

// lw/sw address word-aligned memory directly through the Memory
// Image; misaligned effective addresses are fatal via fetchWord/
// storeWord.

func lw(vm *VM, in *Instruction) (flags, error) {
	ea := vm.Ctx.R[in.rs] + signExtendImm(in.imm)
	v, err := vm.Mem.fetchWord(ea)
	if err != nil {
		return flags{}, err
	}
	vm.Ctx.store(in.rt, v)
	return flags{}, nil
}

func sw(vm *VM, in *Instruction) (flags, error) {
	ea := vm.Ctx.R[in.rs] + signExtendImm(in.imm)
	if err := vm.Mem.storeWord(ea, vm.Ctx.R[in.rt]); err != nil {
		return flags{}, err
	}
	return flags{}, nil
}

// lb decomposes the word fetch into a single-byte, sign-extended load.
func lb(vm *VM, in *Instruction) (flags, error) {
	ea := vm.Ctx.R[in.rs] + signExtendImm(in.imm)
	b, err := vm.Mem.fetchByte(ea)
	if err != nil {
		return flags{}, err
	}
	vm.Ctx.store(in.rt, signExtendByte(b))
	return flags{}, nil
}

// sb read-modify-writes the containing word, replacing only the
// addressed byte lane with the low 8 bits of rt.
func sb(vm *VM, in *Instruction) (flags, error) {
	ea := vm.Ctx.R[in.rs] + signExtendImm(in.imm)
	if err := vm.Mem.storeByte(ea, byte(vm.Ctx.R[in.rt]&0xFF)); err != nil {
		return flags{}, err
	}
	return flags{}, nil
}
