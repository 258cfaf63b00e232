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

// encodeR packs an R-type word: opcode[31:26] rs[25:21] rt[20:16]
// rd[15:11] shamt[10:6] funct[5:0].
func encodeR(op, rs, rt, rd, shamt, funct uint32) uint32 {
	return op<<26 | rs<<21 | rt<<16 | rd<<11 | shamt<<6 | funct
}

// encodeI packs an I-type word: opcode[31:26] rs[25:21] rt[20:16] imm[15:0].
func encodeI(op, rs, rt, imm uint32) uint32 {
	return op<<26 | rs<<21 | rt<<16 | imm&0xFFFF
}

// encodeJ packs a J-type word: opcode[31:26] addr[25:0].
func encodeJ(op, target uint32) uint32 {
	return op<<26 | target&0x3FFFFFF
}

func TestDecodeRType(t *testing.T) {
	in, err := Decode(0x1000, encodeR(opRType, 1, 2, 3, 4, fnAdd))
	require.NoError(t, err)
	require.Equal(t, uint32(1), in.rs)
	require.Equal(t, uint32(2), in.rt)
	require.Equal(t, uint32(3), in.rd)
	require.Equal(t, uint32(4), in.shamt)
	require.Equal(t, uint32(fnAdd), in.funct)
	require.Equal(t, "ADD", in.name)
	require.NotNil(t, in.fn)
}

func TestDecodeIType(t *testing.T) {
	in, err := Decode(0x1000, encodeI(opAddi, 1, 2, 0xFFFF))
	require.NoError(t, err)
	require.Equal(t, uint32(1), in.rs)
	require.Equal(t, uint32(2), in.rt)
	require.Equal(t, uint32(0xFFFF), in.imm)
	require.Equal(t, "ADDI", in.name)
}

func TestDecodeJType(t *testing.T) {
	in, err := Decode(0x1000, encodeJ(opJ, 0x3FFFFFF))
	require.NoError(t, err)
	require.Equal(t, uint32(0x3FFFFFF), in.target)
	require.Equal(t, "J", in.name)
}

func TestDecodeRegimm(t *testing.T) {
	in, err := Decode(0x1000, encodeI(opRegimm, 5, rtBgez, 0))
	require.NoError(t, err)
	require.Equal(t, "BGEZ", in.name)
}

func TestDecodeUnknownOpcodeIsFatal(t *testing.T) {
	_, err := Decode(0x1000, encodeI(0x3A, 0, 0, 0)) // 0x3A is unassigned
	require.Error(t, err)
	var df *DecodeFault
	require.ErrorAs(t, err, &df)
}

func TestDecodeUnknownFunctIsFatal(t *testing.T) {
	_, err := Decode(0x1000, encodeR(opRType, 0, 0, 0, 0, 0x3F)) // unassigned funct
	require.Error(t, err)
	var df *DecodeFault
	require.ErrorAs(t, err, &df)
}

func TestDecodeUnknownRegimmIsFatal(t *testing.T) {
	_, err := Decode(0x1000, encodeI(opRegimm, 0, 0x1F, 0)) // unassigned rt
	require.Error(t, err)
	var df *DecodeFault
	require.ErrorAs(t, err, &df)
}
