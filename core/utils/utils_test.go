package utils

import (
	"reflect"
	"testing"
)

func TestRemoveDuplicates(t *testing.T) {
	numbers := []int{1, 2, 2, 3, 3, 3, 4}
	expectedNumbers := []int{1, 2, 3, 4}
	result := RemoveDuplicates(numbers)
	if !reflect.DeepEqual(result, expectedNumbers) {
		t.Errorf("RemoveDuplicates() with ints = %v, want %v", result, expectedNumbers)
	}

	tokens := []string{"--pull", "--no-cache", "--pull", "--quiet", "--no-cache"}
	expectedTokens := []string{"--pull", "--no-cache", "--quiet"}
	strResult := RemoveDuplicates(tokens)
	if !reflect.DeepEqual(strResult, expectedTokens) {
		t.Errorf("RemoveDuplicates() with strings = %v, want %v", strResult, expectedTokens)
	}
}

func TestRemoveDuplicatesEmpty(t *testing.T) {
	if got := RemoveDuplicates([]string{}); len(got) != 0 {
		t.Errorf("RemoveDuplicates() with empty slice = %v, want empty", got)
	}
}
