// Package registry provides component stores that satisfy the inject.Registry
// contract.
//
// [Store] is a self-contained, concurrency-safe service locator. [Dig] exposes
// a go.uber.org/dig container through the same contract, so dig-managed
// instances can be injected into classes built by package inject.
//
//	store := registry.New()
//	_ = inject.RegisterAs[*Database](store, db)
//
//	widget, err := inject.Create[*Widget](widgetClass, store, nil)
package registry
