// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService — обёртка над стандартным генератором случайных чисел Go,
// чтобы весь прогон можно было воспроизвести по сиду.
type PRNGService struct {
	seed int64
	rng  *rand.Rand
}

// NewPRNGService создаёт сервис с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed возвращает фактически использованный сид
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Float64 возвращает случайное число в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Uniform возвращает равномерно распределённое число в [min, max).
// При min == max всегда возвращается min.
func (s *PRNGService) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*s.rng.Float64()
}
