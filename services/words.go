package services

import "strings"

// AmountInWords converts a whole-rupee amount to Indian English words,
// e.g. 913183 -> "Nine Lakhs Thirteen Thousand One Hundred and Eighty
// Three Rupees Only/-".
func AmountInWords(amount int) string {
	if amount < 0 {
		return "Negative " + AmountInWords(-amount)
	}
	if amount == 0 {
		return "Zero Rupees Only/-"
	}
	return indianWords(int64(amount)) + " Rupees Only/-"
}

func indianWords(n int64) string {
	var parts []string

	if n >= 10000000 {
		parts = append(parts, under100Words(n/10000000)+" Crores")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, under100Words(n/100000)+" Lakhs")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, under100Words(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100Words(n))
		} else {
			parts = append(parts, under100Words(n))
		}
	}

	return strings.Join(parts, " ")
}

func under100Words(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	result := tensWords[n/10]
	if n%10 != 0 {
		result += " " + onesWords[n%10]
	}
	return result
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
