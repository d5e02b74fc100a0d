// Package numerology computes the Pythagorean core numbers of a person.
package numerology

import (
	"strings"
	"unicode"
)

// Profile holds the four core numbers
type Profile struct {
	LifePath     int `json:"life_path"`
	Destiny      int `json:"destiny"`
	Soul         int `json:"soul"`
	PersonalYear int `json:"personal_year"`
}

var masterNumbers = map[int]bool{11: true, 22: true, 33: true}

const vowels = "AEIOU"

// Reduce sums digits until a single digit remains. Master numbers 11, 22
// and 33 are kept as soon as they appear.
func Reduce(n int) int {
	for n > 9 {
		if masterNumbers[n] {
			return n
		}
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// LifePath reduces year, month and day separately, then their sum
func LifePath(year, month, day int) int {
	return Reduce(Reduce(year) + Reduce(month) + Reduce(day))
}

// LetterValue maps a letter to 1-9 (A=1 ... I=9, J=1 ...). Any Unicode
// letter is mapped by its upper-case code point; non-letters are 0.
func LetterValue(r rune) int {
	if !unicode.IsLetter(r) {
		return 0
	}
	offset := int(unicode.ToUpper(r) - 'A')
	return ((offset%9)+9)%9 + 1
}

// Destiny is the reduced sum of every letter in the name
func Destiny(name string) int {
	total := 0
	for _, r := range name {
		total += LetterValue(r)
	}
	return Reduce(total)
}

// Soul is the reduced sum of the vowels A, E, I, O, U in the name
func Soul(name string) int {
	total := 0
	for _, r := range strings.ToUpper(name) {
		if strings.ContainsRune(vowels, r) {
			total += LetterValue(r)
		}
	}
	return Reduce(total)
}

// PersonalYear combines the birthday with the given calendar year
func PersonalYear(month, day, currentYear int) int {
	return Reduce(Reduce(month) + Reduce(day) + Reduce(currentYear))
}

// Calculate builds the full profile
func Calculate(year, month, day int, name string, currentYear int) Profile {
	return Profile{
		LifePath:     LifePath(year, month, day),
		Destiny:      Destiny(name),
		Soul:         Soul(name),
		PersonalYear: PersonalYear(month, day, currentYear),
	}
}
