package aniame_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/aniame"
	"github.com/aretw0/aniame/pkg/adapters/memory"
	"github.com/aretw0/aniame/pkg/refcheck"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
)

// ExampleNew_memory validates a document against schemas built in Go.
func ExampleNew_memory() {
	loader, err := memory.NewFromDictionary(schema.Dictionary{
		"person": schema.Object(
			schema.Prop("name", schema.Required(schema.String())),
			schema.Prop("age", schema.Number()),
		),
	})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := aniame.New(aniame.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	data, err := tree.Decode([]byte(`{"age": "old", "nick": "Al"}`))
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.Validate(context.Background(), data, "person")
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range out.Errors {
		fmt.Println(e.Error())
	}
	// Output:
	// /name: missing required property
	// /age: type mismatch (expected number)
	// /nick: unknown property
}

// ExampleWithRefChecker resolves foreign keys against a reference store.
func ExampleWithRefChecker() {
	store := memory.NewReferenceStore()
	_ = store.Add(context.Background(), "race", "siamese")

	dict, err := schema.UnmarshalDictionary([]byte(`
pet:
  type: object
  properties:
    race: {type: ref, ref: race}
race:
  type: object
  properties:
    name: {type: string, required: true}
`))
	if err != nil {
		log.Fatal(err)
	}

	eng, err := aniame.New(
		aniame.WithDictionary(dict),
		aniame.WithRefChecker(refcheck.ForeignKey(store)),
	)
	if err != nil {
		log.Fatal(err)
	}

	for _, doc := range []string{`{"race": "siamese"}`, `{"race": "persian"}`, `{"race": {}}`} {
		data, _ := tree.Decode([]byte(doc))
		out, err := eng.Validate(context.Background(), data, "pet")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(doc, out.Pointers())
	}
	// Output:
	// {"race": "siamese"} []
	// {"race": "persian"} [/race]
	// {"race": {}} [/race/name]
}
