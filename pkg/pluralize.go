package pkg

import "strconv"

var numberWords = []string{
	"zero", "one", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "ten", "eleven", "twelve", "thirteen",
}

// Pluralize formats count followed by word, spelling small counts out and
// adding an "s" unless count is one: "one apple", "two apples", "20 apples".
func Pluralize(word string, count int) string {
	return PluralizeWith(word, count, "s")
}

// PluralizeWith is Pluralize with a custom plural ending ("20 matches").
func PluralizeWith(word string, count int, ending string) string {
	number := strconv.Itoa(count)
	if count >= 0 && count < len(numberWords) {
		number = numberWords[count]
	}

	if count == 1 {
		return number + " " + word
	}

	return number + " " + word + ending
}
