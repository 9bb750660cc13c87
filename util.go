package vkobj

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ErrBadSPIRV is returned for bytecode that is empty, not word aligned or
// missing the SPIR-V magic number.
var ErrBadSPIRV = errors.New("vulkan: invalid SPIR-V bytecode")

// spirvWords decodes little-endian SPIR-V bytecode into words.
func spirvWords(code []byte) ([]uint32, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, errors.Wrapf(ErrBadSPIRV, "%d bytes", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, errors.Wrapf(ErrBadSPIRV, "magic %#x", words[0])
	}
	return words, nil
}

// VersionMajor, VersionMinor and VersionPatch unpack a version built with
// vk.MakeVersion.
func VersionMajor(v uint32) uint32 { return v >> 22 }

func VersionMinor(v uint32) uint32 { return (v >> 12) & 0x3ff }

func VersionPatch(v uint32) uint32 { return v & 0xfff }
