package service_test

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"bizfinder/internal/interpret"
	"bizfinder/internal/search"
	"bizfinder/internal/service"
	"bizfinder/internal/service/mocks"
	"bizfinder/internal/storage"
	"bizfinder/internal/vectorstore"
	"bizfinder/internal/vocab"
)

// wordEmbedder embeds a text as a bag of the stems it contains.
type wordEmbedder struct{}

var stems = []string{"ayurved", "hospital", "clinic", "bakery"}

func (wordEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(stems))
		for j, s := range stems {
			if strings.Contains(text, s) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

func newExampleInterpreter(t *testing.T) *interpret.Interpreter {
	t.Helper()
	ctx := context.Background()
	cats := []string{"ayurvedic hospital", "bakery"}
	subs := []string{"ayurveda clinic"}
	catEmb, _ := wordEmbedder{}.EmbedTexts(ctx, cats)
	subEmb, _ := wordEmbedder{}.EmbedTexts(ctx, subs)

	idx, err := vocab.New(cats, catEmb, subs, subEmb, []string{"chirala", "ongole"})
	if err != nil {
		t.Fatalf("vocab.New() error = %v", err)
	}
	return interpret.New(idx, wordEmbedder{}, vectorstore.NewMemoryScorer(idx), interpret.Options{})
}

func TestChatService_AyurvedicHospitalsInChirala(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	f := mocks.NewMockFetcher(ctrl)

	intentCall(gen, "Yes", nil)
	f.EXPECT().
		Fetch(gomock.Any(), search.Request{Field: search.FieldCategory, Value: "ayurvedic hospital", City: "chirala"}).
		Return(search.Result{Listings: []storage.Listing{{Name: "Sri Ayur", City: "Chirala", ReviewsCount: 120}}})

	svc := service.NewChatService(gen, newExampleInterpreter(t), f, service.ChatOptions{})
	got, err := svc.Chat(testContext(), service.ChatRequest{Query: "ayurvedic hospitals in chirala"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	listings, ok := got.(service.ListingsResponse)
	if !ok {
		t.Fatalf("Chat() = %T, want ListingsResponse", got)
	}
	if listings.City != "chirala" || listings.Category != "ayurvedic hospital" {
		t.Errorf("Chat() = %+v, want ayurvedic hospital in chirala", listings)
	}
}

func TestChatService_WhatIsAyurveda(t *testing.T) {
	for _, intent := range []string{"yes", "no"} {
		t.Run("intent "+intent, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gen := mocks.NewMockGenerator(ctrl)
			f := mocks.NewMockFetcher(ctrl)
			// No fetch expected

			intentCall(gen, intent, nil)
			explainCall(gen, "Ayurveda is a traditional system of medicine from India.", nil)

			svc := service.NewChatService(gen, newExampleInterpreter(t), f, service.ChatOptions{})
			got, err := svc.Chat(testContext(), service.ChatRequest{Query: "what is ayurveda"})
			if err != nil {
				t.Fatalf("Chat() error = %v", err)
			}
			if got.Kind() != "text" {
				t.Errorf("Chat() kind = %s, want text", got.Kind())
			}
		})
	}
}
