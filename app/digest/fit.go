package digest

import (
	"sort"
)

// FitToSize trims every issue and comment body so the complete rendering
// fits within maxSize. One cut length is applied uniformly across all
// bodies, which keeps trimming positionally fair: no body is cut to
// nothing while another stays untouched.
//
// The chrome (title lines, status lines, links) is priced first; the
// remaining budget is spent on free text by binary-searching the largest
// cut length whose prefix-summed positional cost still fits.
func FitToSize(issues []*Issue, maxSize int) {
	var trimmable []*Content
	minimumSize := 0
	for _, issue := range issues {
		minimumSize += issue.DefaultLength()
		if issue.ContainsChanges() {
			trimmable = append(trimmable, issue.Body)
		}
		for _, comment := range issue.Comments {
			minimumSize += comment.DefaultLength()
			trimmable = append(trimmable, comment.Body)
		}
	}
	if len(trimmable) == 0 {
		return
	}

	maxBodySize := maxSize - minimumSize

	currentSize := 0
	maxContentSize := 0
	for _, content := range trimmable {
		currentSize += content.Len()
		if content.Len() > maxContentSize {
			maxContentSize = content.Len()
		}
	}
	if currentSize <= maxBodySize {
		return
	}

	counter := make([]int, maxContentSize)
	for _, content := range trimmable {
		content.AddToCounter(counter)
	}

	// prefix[i] is the total rendered body size if every content were cut
	// at length i. Monotonically non-decreasing by construction.
	prefix := make([]int, maxContentSize+1)
	for i, weight := range counter {
		prefix[i+1] = prefix[i] + weight
	}

	// Largest cut length whose total still fits. sort.Search finds the
	// first index that overshoots; the cut sits just below it.
	cut := sort.Search(maxContentSize+1, func(i int) bool { return prefix[i] > maxBodySize }) - 1
	if cut < 0 {
		cut = 0
	}

	for _, content := range trimmable {
		content.Trim(cut)
	}
}
