package upload

import "bytes"

type signature struct {
	name  string
	magic []byte
}

// executableSignatures are rejected whatever MIME type the client declares.
var executableSignatures = []signature{
	{name: "PE executable", magic: []byte{0x4D, 0x5A}},
	{name: "ELF executable", magic: []byte{0x7F, 0x45, 0x4C, 0x46}},
	{name: "Java class", magic: []byte{0xCA, 0xFE, 0xBA, 0xBE}},
	{name: "Mach-O 32-bit", magic: []byte{0xFE, 0xED, 0xFA, 0xCE}},
	{name: "Mach-O 32-bit", magic: []byte{0xCE, 0xFA, 0xED, 0xFE}},
	{name: "Mach-O 64-bit", magic: []byte{0xFE, 0xED, 0xFA, 0xCF}},
	{name: "Mach-O 64-bit", magic: []byte{0xCF, 0xFA, 0xED, 0xFE}},
}

// DetectExecutable returns the executable format matched by the leading bytes of data.
func DetectExecutable(data []byte) (string, bool) {
	for _, sig := range executableSignatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.name, true
		}
	}
	return "", false
}
