package classify

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "= $1,299", "=$500": the final price after a markdown.
	reFinalPrice = regexp.MustCompile(`=\s*\$?\s*(\d[\d,]*)`)
	reDollar     = regexp.MustCompile(`\$(\d[\d,]*)`)
)

// ExtractPrice returns the asking price found in a listing title.
// A "= $N" final price wins; otherwise the rightmost "$N" is used, since
// titles tend to list the original price first and the asking price last.
func ExtractPrice(title string) (int, bool) {
	if m := reFinalPrice.FindStringSubmatch(title); m != nil {
		return parseAmount(m[1])
	}

	all := reDollar.FindAllStringSubmatch(title, -1)
	if len(all) == 0 {
		return 0, false
	}
	return parseAmount(all[len(all)-1][1])
}

func parseAmount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
