package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr/funcr"
	"github.com/henderiw/rangeset/pkg/iprange"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/rangetable"
	"k8s.io/apimachinery/pkg/labels"
)

var values = []struct {
	name   string
	rng    string
	labels map[string]string
}{
	{name: "a", rng: "100-200", labels: map[string]string{"a": "b"}},
	{name: "b", rng: "200-250", labels: map[string]string{"a": "b"}},
	{name: "c", rng: "300"},
	{name: "d", rng: "4000-4010"},
}

func main() {
	log := funcr.New(func(prefix, args string) {
		fmt.Println(prefix, args)
	}, funcr.Options{Verbosity: 1})

	a := rangeset.MustParse("0-10")
	b := rangeset.MustParse("3-5, 8-12")
	fmt.Println("a", a, "b", b)
	fmt.Println("a+b", a.Add(b))
	fmt.Println("a-b", a.Subtract(b))
	fmt.Println("a&b", a.Intersect(b))
	fmt.Println("overlaps", a.Overlaps(b), "includes", a.Includes(b))

	t, err := rangetable.New(rangeset.MustParse("0-4096"), rangetable.WithLogger(log))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	for _, v := range values {
		if err := t.Claim(v.name, rangeset.MustParse(v.rng), v.labels); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	e, err := t.ClaimSize("e", 64, nil)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("claimed", e)
	fmt.Println("free", t.Free())

	selector, _ := labels.Parse("a=b")
	for _, e := range t.GetByLabel(selector) {
		fmt.Println("selected", e)
	}

	p, err := iprange.NewPool("10.0.0.10-10.0.0.20", iprange.WithLogger(log))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	_ = p.Claim("10.0.0.10")
	_ = p.Claim("10.0.0.12")
	addr, err := p.FindFree()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("free ip", addr, "free", p.Free())
}
