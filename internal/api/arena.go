package api

import (
	"context"
	"sync"
)

// ArenaResult is one side's outcome of an arena dispatch. Exactly one of
// Text and Err is meaningful.
type ArenaResult struct {
	ModelID string
	Text    string
	Err     error
}

// DispatchArena sends promptA and promptB to their sessions in parallel
// and returns both outcomes. The sides are independent: one failing never
// blocks or discards the other's result.
func DispatchArena(ctx context.Context, sessionA, sessionB *ChatSession, promptA, promptB string) (ArenaResult, ArenaResult) {
	var wg sync.WaitGroup
	var resA, resB ArenaResult

	wg.Add(2)
	go func() {
		defer wg.Done()
		text, err := sessionA.SendMessage(ctx, promptA)
		resA = ArenaResult{ModelID: sessionA.ModelID(), Text: text, Err: err}
	}()
	go func() {
		defer wg.Done()
		text, err := sessionB.SendMessage(ctx, promptB)
		resB = ArenaResult{ModelID: sessionB.ModelID(), Text: text, Err: err}
	}()
	wg.Wait()

	return resA, resB
}
