package services

// Shared test doubles for the service suites.

import (
	"context"

	"go.uber.org/zap"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// recordingDispatcher captures mirror intents instead of delivering them.
type recordingDispatcher struct {
	saved   []string
	deleted []string
}

func (d *recordingDispatcher) RecordSaved(collection string, _ interface{}) {
	d.saved = append(d.saved, collection)
}

func (d *recordingDispatcher) RecordDeleted(collection, id string) {
	d.deleted = append(d.deleted, collection+":"+id)
}

var _ ports.Dispatcher = (*recordingDispatcher)(nil)

// stubGenerator returns canned text for every generation call.
type stubGenerator struct {
	report string
	letter string
	err    error
}

func (g *stubGenerator) ExtractVerificationInfo(context.Context, []byte) (*ports.ExtractedVerification, error) {
	return &ports.ExtractedVerification{}, g.err
}

func (g *stubGenerator) ReconstructDocument(context.Context, [][]byte) (string, error) {
	return "", g.err
}

func (g *stubGenerator) GenerateResponseLetter(context.Context, *entities.VerificationRequest, string) (string, error) {
	return g.letter, g.err
}

func (g *stubGenerator) GenerateReport(context.Context, interface{}, string, string) (string, error) {
	return g.report, g.err
}

var _ ports.Generator = (*stubGenerator)(nil)
