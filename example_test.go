package tagsheet_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/porticus-lab/tagsheet"
)

func Example() {
	r, err := tagsheet.NewRenderer(
		tagsheet.WithTimeout(60*time.Second),
		tagsheet.WithNoSandbox(),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	outcomes, err := r.RenderRange(context.Background(), "http://localhost:8000/", "tags", 120, 125)
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range outcomes {
		if o.Skipped {
			fmt.Printf("tag %d skipped (%d)\n", o.ID, o.Status)
			continue
		}
		fmt.Println("wrote", o.Path)
	}
}

func ExampleTagURL() {
	u, err := tagsheet.TagURL("http://localhost:8000/", 42)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(u)
	fmt.Println(tagsheet.TagFile(42))
	// Output:
	// http://localhost:8000/media/advideogame/occurrences/42/tags/v2.html
	// tag_42.png
}
