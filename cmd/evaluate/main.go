package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"codechat/config"
	"codechat/internal/usecase"

	"github.com/rs/zerolog"
)

func main() {
	dir := flag.String("dir", ".", "Directory holding codechat.yaml")
	query := flag.String("q", "", "Evaluate a single question instead of the training phrases")
	flag.Parse()

	cfg, err := loadConfig(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	engine, err := usecase.NewEngine(context.Background(), cfg, usecase.EngineOptions{
		RootDir:  *dir,
		Progress: os.Stderr,
	}, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building engine: %v\n", err)
		os.Exit(1)
	}

	threshold := cfg.Classifier.ConfidenceThreshold
	stats := engine.Classifier.Stats()

	fmt.Println("CLASSIFIER EVALUATION")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Classes:    %d\n", len(engine.Classifier.Classes()))
	fmt.Printf("Vocabulary: %d terms\n", engine.Classifier.VocabularySize())
	fmt.Printf("Training:   %d iterations, loss %.4f, converged=%v\n", stats.Iterations, stats.Loss, stats.Converged)
	fmt.Printf("Threshold:  %.2f\n", threshold)
	fmt.Println()

	if *query != "" {
		res := engine.Resolver.Explain(*query)
		pred := engine.Classifier.Classify(*query)
		fmt.Printf("Question: %q\n", *query)
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("Source:     %s\n", res.Source)
		fmt.Printf("Topic:      %s\n", res.TopicID)
		fmt.Printf("Classifier: %s (%.3f) %s\n", pred.TopicID, pred.Confidence, rating(pred.Confidence, threshold))
		fmt.Printf("\n%s\n", res.Answer)
		return
	}

	fmt.Println("Training phrases:")
	fmt.Println(strings.Repeat("-", 70))

	total, correct, gated := 0, 0, 0
	for _, topic := range engine.Knowledge.Topics {
		for _, pattern := range topic.Patterns {
			pred := engine.Classifier.Classify(pattern)
			total++

			mark := "MISS"
			if pred.TopicID == topic.ID {
				correct++
				mark = "OK"
			}
			if pred.Confidence >= threshold {
				gated++
			}

			fmt.Printf("%-4s %-36q -> %-16s %.3f %s\n", mark, pattern, pred.TopicID, pred.Confidence, rating(pred.Confidence, threshold))
		}
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS:\n")
	fmt.Printf("  Training accuracy: %d/%d (%.1f%%)\n", correct, total, 100*float64(correct)/float64(total))
	fmt.Printf("  Above threshold:   %d/%d\n", gated, total)

	if gated == 0 {
		fmt.Println("  Status: POOR - the classifier never clears the threshold; rules carry every answer")
	} else if correct == total {
		fmt.Println("  Status: GOOD - every training phrase maps back to its topic")
	} else {
		fmt.Println("  Status: OK - some training phrases map to other topics")
	}
}

// loadConfig reads, overrides and validates the config the same way the CLI does.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func rating(confidence, threshold float64) string {
	if confidence >= threshold {
		return "PASS"
	}
	return "BELOW"
}
