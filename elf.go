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
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	ptLoad = 1

	elfHeaderSize = 52 // ELF32 file header
	phdrSize      = 32 // ELF32 program header; must match e_phentsize

	stackSize = 0x8000
	stackBase = 0xC0000000
)

// elf32Header mirrors the fields of an ELF32 file header, in file
// order, that Load must validate before trusting the rest of the
// file.
type elf32Header struct {
	ident     [16]byte
	typ       uint16
	machine   uint16
	version   uint32
	entry     uint32
	phoff     uint32
	shoff     uint32
	flags     uint32
	ehsize    uint16
	phentsize uint16
	phnum     uint16
	shentsize uint16
	shnum     uint16
	shstrndx  uint16
}

// elf32Phdr mirrors an ELF32 program header.
type elf32Phdr struct {
	typ    uint32
	offset uint32
	vaddr  uint32
	paddr  uint32
	filesz uint32
	memsz  uint32
	flags  uint32
	align  uint32
}

// Load opens, validates, and maps the ELF executable at path into a
// fresh MemoryImage and builds the initial Context. The file handle
// is closed on every exit path via defer, regardless of where
// validation fails.
func Load(path string) (*MemoryImage, *Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Reason: "can't open file", Err: err}
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, &LoadError{Reason: "can't read file", Err: err}
	}

	hdr, err := parseHeader(raw)
	if err != nil {
		return nil, nil, err
	}

	mem := &MemoryImage{}
	for i := 0; i < int(hdr.phnum); i++ {
		off := int(hdr.phoff) + i*phdrSize
		if off+phdrSize > len(raw) {
			return nil, nil, &LoadError{Reason: fmt.Sprintf("program header %d is out of bounds", i)}
		}
		ph := parsePhdr(raw[off : off+phdrSize])
		if ph.typ != ptLoad {
			continue
		}
		r := newRegion(ph.vaddr, ph.memsz)
		if ph.filesz > 0 {
			end := int(ph.offset + ph.filesz)
			if end > len(raw) {
				return nil, nil, &LoadError{Reason: fmt.Sprintf("program header %d's file range is out of bounds", i)}
			}
			fill(r, raw[ph.offset:end])
		}
		mem.addRegion(r)
	}

	stack := newRegion(stackBase, stackSize)
	mem.addRegion(stack)
	if err := mem.disjoint(); err != nil {
		return nil, nil, &LoadError{Reason: "PT_LOAD regions overlap", Err: err}
	}

	ctx := &Context{PC: hdr.entry}
	ctx.R[sp] = stackBase + stackSize - 4

	return mem, ctx, nil
}

// fill copies file bytes into a Region's word-addressed backing store,
// little-endian, zero-padding anything past len(data).
func fill(r *Region, data []byte) {
	for i := 0; i+4 <= len(data); i += 4 {
		r.words[i/4] = binary.LittleEndian.Uint32(data[i:])
	}
	rem := len(data) % 4
	if rem == 0 {
		return
	}
	var last [4]byte
	copy(last[:], data[len(data)-rem:])
	r.words[(len(data)-rem)/4] = binary.LittleEndian.Uint32(last[:])
}

func parseHeader(raw []byte) (*elf32Header, error) {
	if len(raw) < elfHeaderSize {
		return nil, &LoadError{Reason: "file is too small to contain an ELF header"}
	}
	var h elf32Header
	copy(h.ident[:], raw[0:16])
	h.typ = binary.LittleEndian.Uint16(raw[16:18])
	h.machine = binary.LittleEndian.Uint16(raw[18:20])
	h.version = binary.LittleEndian.Uint32(raw[20:24])
	h.entry = binary.LittleEndian.Uint32(raw[24:28])
	h.phoff = binary.LittleEndian.Uint32(raw[28:32])
	h.shoff = binary.LittleEndian.Uint32(raw[32:36])
	h.flags = binary.LittleEndian.Uint32(raw[36:40])
	h.ehsize = binary.LittleEndian.Uint16(raw[40:42])
	h.phentsize = binary.LittleEndian.Uint16(raw[42:44])
	h.phnum = binary.LittleEndian.Uint16(raw[44:46])
	h.shentsize = binary.LittleEndian.Uint16(raw[46:48])
	h.shnum = binary.LittleEndian.Uint16(raw[48:50])
	h.shstrndx = binary.LittleEndian.Uint16(raw[50:52])

	switch {
	case h.ident[0] != 0x7F || h.ident[1] != 'E' || h.ident[2] != 'L' || h.ident[3] != 'F':
		return nil, &LoadError{Reason: "not an ELF file (bad magic)"}
	case h.ident[4] != 1:
		return nil, &LoadError{Reason: "not a 32-bit ELF file"}
	case h.ident[5] != 1:
		return nil, &LoadError{Reason: "not a little-endian ELF file"}
	case h.machine != 8:
		return nil, &LoadError{Reason: fmt.Sprintf("not a MIPS ELF file (e_machine=%d)", h.machine)}
	case h.typ != 2:
		return nil, &LoadError{Reason: fmt.Sprintf("not an executable ELF file (e_type=%d)", h.typ)}
	case h.version != 1:
		return nil, &LoadError{Reason: fmt.Sprintf("unsupported e_version=%d", h.version)}
	case h.phentsize != phdrSize:
		return nil, &LoadError{Reason: fmt.Sprintf("unexpected e_phentsize=%d", h.phentsize)}
	}
	return &h, nil
}

func parsePhdr(b []byte) *elf32Phdr {
	return &elf32Phdr{
		typ:    binary.LittleEndian.Uint32(b[0:4]),
		offset: binary.LittleEndian.Uint32(b[4:8]),
		vaddr:  binary.LittleEndian.Uint32(b[8:12]),
		paddr:  binary.LittleEndian.Uint32(b[12:16]),
		filesz: binary.LittleEndian.Uint32(b[16:20]),
		memsz:  binary.LittleEndian.Uint32(b[20:24]),
		flags:  binary.LittleEndian.Uint32(b[24:28]),
		align:  binary.LittleEndian.Uint32(b[28:32]),
	}
}
