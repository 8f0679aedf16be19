package prizewheel

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// DrawSource supplies uniform samples in [0, 1).
type DrawSource interface {
	Float64() float64
}

// SourceFunc adapts a plain function to DrawSource.
type SourceFunc func() float64

func (f SourceFunc) Float64() float64 { return f() }

// Fixed returns a source that always yields v. Handy in tests.
func Fixed(v float64) DrawSource {
	return SourceFunc(func() float64 { return v })
}

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	cryptoRand.Read(buf[:])
	// top 53 bits scaled into [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// CryptoSource is the production source, backed by crypto/rand. It never
// touches the math/rand global generator.
func CryptoSource() DrawSource { return cryptoSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a reproducible PCG source.
func NewSeededSource(seed uint64) DrawSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// Scheduler runs f once after d. Nothing waits on f.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// TimerScheduler schedules on the runtime timer heap.
func TimerScheduler() Scheduler { return timerScheduler{} }
