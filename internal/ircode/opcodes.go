package ircode

// Opcode identifies a virtual machine instruction. Arithmetic and
// comparison opcodes are typed: the checker guarantees operand types, so
// the machine never inspects its operands to pick a behavior.
type Opcode uint8

const (
	// Constants
	OP_CONSTI Opcode = iota // push int immediate
	OP_CONSTF               // push float immediate
	OP_CONSTB               // push bool immediate (0 or 1)
	OP_CONSTC               // push char immediate (code point)

	// Integer arithmetic
	OP_ADDI
	OP_SUBI
	OP_MULI
	OP_DIVI

	// Float arithmetic
	OP_ADDF
	OP_SUBF
	OP_MULF
	OP_DIVF

	// Unary
	OP_NEGI
	OP_NEGF
	OP_NOT

	// Integer comparisons, also used for char and bool operands
	OP_LTI
	OP_LEI
	OP_GTI
	OP_GEI
	OP_EQI
	OP_NEI

	// Float comparisons
	OP_LTF
	OP_LEF
	OP_GTF
	OP_GEF
	OP_EQF
	OP_NEF

	// Logical, operands are bools
	OP_AND
	OP_OR

	// Conversions
	OP_ITOF
	OP_FTOI

	// Variables, name immediate
	OP_LOADG
	OP_STOREG
	OP_LOADL
	OP_STOREL

	// Control flow, absolute instruction index immediate
	OP_JUMP
	OP_JUMPF // pop bool, jump when false

	// Functions
	OP_CALL // name immediate
	OP_RET
	OP_POP

	// Memory
	OP_GROW // pop size, extend memory, push prior length
	OP_PEEK // pop address, push cell
	OP_POKE // pop value then address, store cell

	// Output
	OP_PRINTI
	OP_PRINTF
	OP_PRINTB
	OP_PRINTC
)

var opcodeNames = map[Opcode]string{
	OP_CONSTI: "CONSTI",
	OP_CONSTF: "CONSTF",
	OP_CONSTB: "CONSTB",
	OP_CONSTC: "CONSTC",
	OP_ADDI:   "ADDI",
	OP_SUBI:   "SUBI",
	OP_MULI:   "MULI",
	OP_DIVI:   "DIVI",
	OP_ADDF:   "ADDF",
	OP_SUBF:   "SUBF",
	OP_MULF:   "MULF",
	OP_DIVF:   "DIVF",
	OP_NEGI:   "NEGI",
	OP_NEGF:   "NEGF",
	OP_NOT:    "NOT",
	OP_LTI:    "LTI",
	OP_LEI:    "LEI",
	OP_GTI:    "GTI",
	OP_GEI:    "GEI",
	OP_EQI:    "EQI",
	OP_NEI:    "NEI",
	OP_LTF:    "LTF",
	OP_LEF:    "LEF",
	OP_GTF:    "GTF",
	OP_GEF:    "GEF",
	OP_EQF:    "EQF",
	OP_NEF:    "NEF",
	OP_AND:    "AND",
	OP_OR:     "OR",
	OP_ITOF:   "ITOF",
	OP_FTOI:   "FTOI",
	OP_LOADG:  "LOADG",
	OP_STOREG: "STOREG",
	OP_LOADL:  "LOADL",
	OP_STOREL: "STOREL",
	OP_JUMP:   "JUMP",
	OP_JUMPF:  "JUMPF",
	OP_CALL:   "CALL",
	OP_RET:    "RET",
	OP_POP:    "POP",
	OP_GROW:   "GROW",
	OP_PEEK:   "PEEK",
	OP_POKE:   "POKE",
	OP_PRINTI: "PRINTI",
	OP_PRINTF: "PRINTF",
	OP_PRINTB: "PRINTB",
	OP_PRINTC: "PRINTC",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
