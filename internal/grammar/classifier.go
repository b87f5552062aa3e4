//go:generate go run go.uber.org/mock/mockgen -source=classifier.go -destination=../mocks/mock_classifier.go -package=mocks
package grammar

import "context"

// Classifier labels grammar errors in a batch of sentences.
//
// Classify returns one annotation list per input sentence, in input order.
// The result may be shorter than the input; sentences without an entry are
// treated as error-free. Any returned error makes the caller discard the
// whole result.
type Classifier interface {
	Classify(ctx context.Context, sentences []string) ([][]Annotation, error)

	// Available reports whether the classifier is configured to serve
	// requests. Analyzer skips unavailable classifiers without calling them.
	Available() bool
}
