package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/scour"
	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/corpus"
)

// sampleTasks are built-in development fixtures: small documents with a
// question each, enough to exercise every search strategy locally.
var sampleTasks = []*core.TaskRecord{
	{
		TaskID:     "sample-001",
		Domain:     "single_document_qa",
		SubDomain:  "fiction",
		Difficulty: "easy",
		Length:     "short",
		Question:   "Where did she find the hidden key?",
		Context: "She found a hidden key in the dusty attic. " +
			"The old clock chimed thirteen times in an abandoned town. " +
			"A mysterious map led them to a forgotten treasure buried beneath the lighthouse. " +
			"The lighthouse beam cut through fog, guiding sailors safely past the rocks. " +
			"Her heart raced as she stepped onto the stage for the first time.",
		Choices: []string{"In the cellar", "In the dusty attic", "Under the lighthouse", "On the stage"},
	},
	{
		TaskID:     "sample-002",
		Domain:     "single_document_qa",
		SubDomain:  "fiction",
		Difficulty: "easy",
		Length:     "short",
		Question:   "What signaled the arrival of deer?",
		Context: "A rustling in the bushes signaled the arrival of deer. " +
			"The wind carried scents of jasmine from distant gardens. " +
			"He built a wooden bridge across the swift river. " +
			"A lone wolf howled, echoing into the vast night. " +
			"The river's current carried leaves downstream like paper boats.",
		Choices: []string{"A wolf's howl", "A rustling in the bushes", "Falling leaves", "The scent of jasmine"},
	},
	{
		TaskID:     "sample-003",
		Domain:     "single_document_qa",
		SubDomain:  "code",
		Difficulty: "easy",
		Length:     "short",
		Question:   "What did the cat debug at 3 AM?",
		Context: "The server room developed opinions about the backup schedule. " +
			"The cat debugged the production database at 3 AM. " +
			"Memory leaks formed a union and the garbage collector went on strike. " +
			"The race condition won by not participating. " +
			"Documentation exists in a superposition until observed.",
		Choices: []string{"The backup schedule", "The production database", "The garbage collector", "The documentation"},
	},
	{
		TaskID:     "sample-004",
		Domain:     "single_document_qa",
		SubDomain:  "code",
		Difficulty: "hard",
		Length:     "short",
		Question:   "At which seed did the random number generator achieve enlightenment?",
		Context: "The neural network trained itself to procrastinate efficiently. " +
			"The random number generator achieved enlightenment at seed 42. " +
			"Semantic versioning lost all meaning at version 2.0.0. " +
			"Code coverage reached 101 percent and broke mathematics. " +
			"The distributed system achieved consensus through interpretive dance.",
		Choices: []string{"7", "13", "42", "101"},
	},
	{
		TaskID:     "sample-005",
		Domain:     "single_document_qa",
		SubDomain:  "nature",
		Difficulty: "easy",
		Length:     "short",
		Question:   "What hovered beside the purple flower?",
		Context: "The hummingbird hovered beside a vibrant purple flower. " +
			"Sunlight filtered through curtains, turning dust motes into golden specks. " +
			"Beneath the waves, coral gardens shimmered in colors unseen. " +
			"A bright comet streaked across the horizon at midnight. " +
			"The desert dunes shifted silently under a pale moon.",
		Choices: []string{"A comet", "A hummingbird", "A dust mote", "A coral garden"},
	},
	{
		TaskID:     "sample-006",
		Domain:     "single_document_qa",
		SubDomain:  "nature",
		Difficulty: "hard",
		Length:     "short",
		Question:   "How often does the abandoned lighthouse broadcast its warning?",
		Context: "The abandoned lighthouse still broadcasts its warning every third Tuesday. " +
			"Seventeen geese unanimously voted to relocate the pond. " +
			"Gravity works part-time on weekends. " +
			"Thursdays were canceled due to budget constraints. " +
			"A gentle snowfall blanketed the city in quiet white.",
		Choices: []string{"Every night", "Every weekend", "Every third Tuesday", "Every Thursday"},
	},
}

var (
	dbPath = flag.String("db", "./scour_db", "path to the task store directory")
	srcDir = flag.String("src", "", "directory of task JSON files to import instead of the samples")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	store, err := scour.NewStore(*dbPath)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	ctx := context.Background()

	// Import from a directory when given one, otherwise seed the samples
	if *srcDir != "" {
		importer, err := corpus.NewImporter(store.TaskRepository(),
			corpus.WithProgress(os.Stderr, 100))
		if err != nil {
			panic(err)
		}

		stats, err := importer.Import(ctx, *srcDir)
		if err != nil {
			panic(err)
		}
		slog.Info("import finished", "imported", stats.Imported, "skipped", stats.Skipped)
		return
	}

	added, err := store.TaskRepository().AddTaskRecords(ctx, sampleTasks...)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded sample tasks", "count", len(added))
}
