package crcgo

import (
	"hash"

	crchash "github.com/hupe1980/crcgo/internal/hash"
)

// Size is the size of a CRC-32 checksum in bytes.
const Size = 4

// Hasher is an in-progress CRC-32 computation.
//
// A Hasher is Open until Finalize is called and Finalized afterwards. Each
// independent checksum needs its own Hasher; a Hasher must not be shared
// between goroutines without synchronization.
type Hasher struct {
	reg       uint32
	amount    int64
	finalized bool
}

// New returns a Hasher representing zero bytes processed.
func New() *Hasher {
	return &Hasher{reg: crchash.Init}
}

// NewWithInitial returns a Hasher that continues a computation whose
// finalized checksum so far is sum over amount bytes.
func NewWithInitial(sum uint32, amount int64) *Hasher {
	return &Hasher{reg: sum ^ crchash.XorOut, amount: amount}
}

// Update folds p into the running checksum. An empty p is a no-op.
//
// Update panics with ErrFinalized if the Hasher was already finalized.
func (h *Hasher) Update(p []byte) {
	h.mustBeOpen()
	h.reg = crchash.Update(h.reg, p)
	h.amount += int64(len(p))
}

// Finalize returns the checksum and ends the computation. Any further call to
// Update or Finalize panics with ErrFinalized.
func (h *Hasher) Finalize() uint32 {
	h.mustBeOpen()
	h.finalized = true
	return h.reg ^ crchash.XorOut
}

// Sum32 returns the checksum of the bytes processed so far without ending
// the computation.
func (h *Hasher) Sum32() uint32 {
	h.mustBeOpen()
	return h.reg ^ crchash.XorOut
}

// Amount returns the number of bytes processed so far.
func (h *Hasher) Amount() int64 {
	return h.amount
}

// Reset returns the Hasher to the Open state with zero bytes processed.
// It is valid on a finalized Hasher.
func (h *Hasher) Reset() {
	h.reg = crchash.Init
	h.amount = 0
	h.finalized = false
}

// Combine appends the bytes processed by other to h, as if they had been
// passed to h.Update. other is left untouched.
func (h *Hasher) Combine(other *Hasher) {
	h.mustBeOpen()
	other.mustBeOpen()
	sum := crchash.Combine(h.reg^crchash.XorOut, other.reg^crchash.XorOut, other.amount)
	h.reg = sum ^ crchash.XorOut
	h.amount += other.amount
}

func (h *Hasher) mustBeOpen() {
	if h.finalized {
		panic(ErrFinalized)
	}
}

// Checksum returns the CRC-32 checksum of p.
func Checksum(p []byte) uint32 {
	return crchash.Update(crchash.Init, p) ^ crchash.XorOut
}

// Combine returns the checksum of A‖B given sum1 = Checksum(A),
// sum2 = Checksum(B) and len2 = len(B).
func Combine(sum1, sum2 uint32, len2 int64) uint32 {
	return crchash.Combine(sum1, sum2, len2)
}

// digest adapts Hasher to hash.Hash32.
type digest struct {
	h Hasher
}

// NewHash32 returns a hash.Hash32 computing the same checksum as Hasher.
// Sum and Sum32 do not end the computation.
func NewHash32() hash.Hash32 {
	d := &digest{}
	d.h.Reset()
	return d
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.h.Reset() }

func (d *digest) Write(p []byte) (int, error) {
	d.h.Update(p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.h.Sum32() }

func (d *digest) Sum(in []byte) []byte {
	return AppendSum(in, d.h.Sum32())
}
