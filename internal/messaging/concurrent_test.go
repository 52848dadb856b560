package messaging

import (
	"reflect"
	"sync"
	"testing"

	"github.com/schoolportal/portal/internal/fixtures"
)

// Run with -race: the functions share one dataset without coordination.
func TestConcurrentListAndAssemble(t *testing.T) {
	ds := fixtures.Default()

	wantListing, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, "user")
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	wantThreads := make(map[string][]ThreadItem, len(ds.Conversations))
	for _, conv := range ds.Conversations {
		wantThreads[conv.ID] = AssembleThread(conv, ds.Messages)
	}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers*(len(ds.Conversations)+1))

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			listing, err := ListConversations("user2", ds.Conversations, ds.Users, ds.Messages, "user")
			if err != nil {
				errs <- err.Error()
				return
			}
			if !reflect.DeepEqual(listing, wantListing) {
				errs <- "listing differs from reference"
			}

			for _, conv := range ds.Conversations {
				if got := AssembleThread(conv, ds.Messages); !reflect.DeepEqual(got, wantThreads[conv.ID]) {
					errs <- "thread " + conv.ID + " differs from reference"
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
