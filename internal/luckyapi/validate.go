package luckyapi

import (
	"strings"
	"unicode/utf8"
)

// Validation messages shown inline by the client.
const (
	MsgInvalidNumber    = "请输入有效的4位数字手机尾号。"
	MsgMissingBirthdate = "请先选择您的出生年月日。"
	MsgInvalidName      = "请输入至少2个字的姓名。"
)

// NumberLength is the number of trailing phone digits the service accepts.
const NumberLength = 4

// ValidateNumber requires exactly four ASCII digits.
func ValidateNumber(number string) error {
	if len(number) != NumberLength {
		return &ValidationError{Field: "number", Message: MsgInvalidNumber}
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return &ValidationError{Field: "number", Message: MsgInvalidNumber}
		}
	}
	return nil
}

// ValidateBirthdate only requires a non-empty value; the server parses it.
func ValidateBirthdate(birthdate string) error {
	if strings.TrimSpace(birthdate) == "" {
		return &ValidationError{Field: "birthdate", Message: MsgMissingBirthdate}
	}
	return nil
}

// ValidateName requires at least two characters after trimming.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		return &ValidationError{Field: "name", Message: MsgInvalidName}
	}
	return nil
}

// SanitizeNumberInput strips non-digits and truncates to NumberLength,
// mirroring the number field's input filter.
func SanitizeNumberInput(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() == NumberLength {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaskNumber hides everything but the last four digits behind "****".
func MaskNumber(number string) string {
	if len(number) > NumberLength {
		number = number[len(number)-NumberLength:]
	}
	return "****" + number
}
