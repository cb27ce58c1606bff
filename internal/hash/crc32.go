package hash

const (
	// Polynomial is the reflected form of the IEEE 802.3 polynomial 0x04C11DB7.
	Polynomial uint32 = 0xedb88320

	// Init is the register value before any byte is processed.
	Init uint32 = 0xffffffff

	// XorOut is applied to the register to produce the final checksum.
	XorOut uint32 = 0xffffffff
)

// Table is a 256-entry CRC-32 lookup table.
type Table [256]uint32

// ieeeTable is built once at init and read-only afterwards.
var ieeeTable = makeTable(Polynomial)

func makeTable(poly uint32) *Table {
	t := new(Table)
	for i := range t {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return t
}

// IEEETable returns the shared table. The returned value must not be modified.
func IEEETable() *Table {
	return ieeeTable
}

// Update folds p into the raw register reg and returns the new register.
func Update(reg uint32, p []byte) uint32 {
	t := ieeeTable
	for _, b := range p {
		reg = t[byte(reg)^b] ^ (reg >> 8)
	}
	return reg
}

// Combine returns the checksum of A‖B given sum1 = CRC(A), sum2 = CRC(B) and
// len2 = len(B). Both sums are finalized values.
//
// It applies len2 zero bytes to sum1 by repeated squaring of the GF(2)
// operator matrix, zlib style, in O(log len2).
func Combine(sum1, sum2 uint32, len2 int64) uint32 {
	if len2 <= 0 {
		return sum1
	}

	var even, odd [32]uint32

	// Operator for one zero bit.
	odd[0] = Polynomial
	row := uint32(1)
	for n := 1; n < 32; n++ {
		odd[n] = row
		row <<= 1
	}

	// Two zero bits, then four.
	matrixSquare(&even, &odd)
	matrixSquare(&odd, &even)

	// The first square below yields one zero byte (eight zero bits).
	for {
		matrixSquare(&even, &odd)
		if len2&1 != 0 {
			sum1 = matrixTimes(&even, sum1)
		}
		len2 >>= 1
		if len2 == 0 {
			break
		}

		matrixSquare(&odd, &even)
		if len2&1 != 0 {
			sum1 = matrixTimes(&odd, sum1)
		}
		len2 >>= 1
		if len2 == 0 {
			break
		}
	}

	return sum1 ^ sum2
}

func matrixTimes(mat *[32]uint32, vec uint32) uint32 {
	var sum uint32
	for i := 0; vec != 0; i++ {
		if vec&1 != 0 {
			sum ^= mat[i]
		}
		vec >>= 1
	}
	return sum
}

func matrixSquare(square, mat *[32]uint32) {
	for n := 0; n < 32; n++ {
		square[n] = matrixTimes(mat, mat[n])
	}
}
