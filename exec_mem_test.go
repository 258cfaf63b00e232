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
	"testing"

	"github.com/stretchr/testify/require"
)

func newMemVM() (*VM, *MemoryImage) {
	mem := &MemoryImage{}
	mem.addRegion(newRegion(0x1000, 0x100))
	ctx := &Context{}
	return &VM{Ctx: ctx, Mem: mem}, mem
}

func TestLoadStoreWordRoundTrip(t *testing.T) {
	vm, _ := newMemVM()
	vm.Ctx.R[1] = 0x1000 // rs (base)
	vm.Ctx.R[2] = 0x12345678
	_, err := sw(vm, &Instruction{rs: 1, rt: 2, imm: 0x10})
	require.NoError(t, err)

	_, err = lw(vm, &Instruction{rs: 1, rt: 3, imm: 0x10})
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), vm.Ctx.R[3])
}

func TestLWMisalignedIsFatal(t *testing.T) {
	vm, _ := newMemVM()
	vm.Ctx.R[1] = 0x1000
	_, err := lw(vm, &Instruction{rs: 1, rt: 3, imm: 1})
	require.Error(t, err)
	var mf *MemoryFault
	require.ErrorAs(t, err, &mf)
	require.Equal(t, faultMisaligned, mf.Kind)
}

func TestLBSignExtension(t *testing.T) {
	vm, mem := newMemVM()
	require.NoError(t, mem.storeWord(0x1000, 0x000000FF))
	vm.Ctx.R[1] = 0x1000

	_, err := lb(vm, &Instruction{rs: 1, rt: 2, imm: 0})
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), vm.Ctx.R[2], "LB at the FF byte must sign-extend to all-ones")

	_, err = lb(vm, &Instruction{rs: 1, rt: 3, imm: 1})
	require.NoError(t, err)
	require.Equal(t, uint32(0x00000000), vm.Ctx.R[3], "LB one byte over must read a zero byte")
}

func TestSBWritesOnlyItsLane(t *testing.T) {
	vm, mem := newMemVM()
	require.NoError(t, mem.storeWord(0x1000, 0xFFFFFFFF))
	vm.Ctx.R[1] = 0x1000
	vm.Ctx.R[2] = 0xAB

	_, err := sb(vm, &Instruction{rs: 1, rt: 2, imm: 1})
	require.NoError(t, err)
	got, err := mem.fetchWord(0x1000)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFABFF), got)
}

func TestSWNegativeDisplacement(t *testing.T) {
	vm, mem := newMemVM()
	vm.Ctx.R[1] = 0x1010
	vm.Ctx.R[2] = 42
	_, err := sw(vm, &Instruction{rs: 1, rt: 2, imm: 0xFFF0}) // -16
	require.NoError(t, err)
	got, err := mem.fetchWord(0x1000)
	require.NoError(t, err)
	require.Equal(t, uint32(42), got)
}
