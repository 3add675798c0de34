package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// IsFormValid reports whether the form may be submitted: employee name, date,
// and every task's description and hours are non-empty. It is a presence
// check only; hours are not parsed.
func IsFormValid(emp domain.EmployeeContext, tasks []domain.TaskEntry) bool {
	if emp.EmployeeName == "" || emp.Date == "" {
		return false
	}
	for _, t := range tasks {
		if t.Description == "" || t.HoursWorked == "" {
			return false
		}
	}
	return true
}

// TotalHours sums the parsed hours of tasks. Unparsable input counts as 0.
func TotalHours(tasks []domain.TaskEntry) float64 {
	var total float64
	for _, t := range tasks {
		h, _ := ParseHours(t.HoursWorked)
		total += h
	}
	return total
}

// ParseHours parses the longest leading decimal number of s after leading
// whitespace, so "7.5h" is 7.5 and "abc" is not a number. NaN and infinities
// are rejected.
func ParseHours(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// numericPrefix returns the length of the leading [sign]digits[.digits][exp]
// run of s, or 0 when it holds no digits.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > k {
			end = j
		}
	}
	return end
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Validator gates the submit affordance. With Strict unset it is the presence
// check of IsFormValid. With Strict set, hours must also parse and lie within
// [0, MaxHoursPerDay].
type Validator struct {
	Strict bool
}

// Valid reports whether the form may be submitted.
func (v Validator) Valid(emp domain.EmployeeContext, tasks []domain.TaskEntry) bool {
	if !IsFormValid(emp, tasks) {
		return false
	}
	if !v.Strict {
		return true
	}
	for _, t := range tasks {
		if !hoursInRange(t.HoursWorked) {
			return false
		}
	}
	return true
}

// Problems lists every field that keeps the form from being valid, in display
// order. It is empty exactly when Valid returns true.
func (v Validator) Problems(emp domain.EmployeeContext, tasks []domain.TaskEntry) []string {
	var out []string
	if emp.EmployeeName == "" {
		out = append(out, "employee name is required")
	}
	if emp.Date == "" {
		out = append(out, "date is required")
	}
	for i, t := range tasks {
		n := i + 1
		if t.Description == "" {
			out = append(out, fmt.Sprintf("task %d: description is required", n))
		}
		switch {
		case t.HoursWorked == "":
			out = append(out, fmt.Sprintf("task %d: hours are required", n))
		case v.Strict && !hoursInRange(t.HoursWorked):
			out = append(out, fmt.Sprintf("task %d: hours must be a number between 0 and %g", n, domain.MaxHoursPerDay))
		}
	}
	return out
}

// hoursInRange requires the whole input to be a number, unlike ParseHours.
func hoursInRange(s string) bool {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(h) {
		return false
	}
	return h >= 0 && h <= domain.MaxHoursPerDay
}
