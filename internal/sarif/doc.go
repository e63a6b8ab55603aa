/*
Package sarif models the subset of SARIF 2.1.0 that repokit reads and rewrites.

Only the members the enhancer and summarizer touch are typed. Every other
member of every object is kept as raw JSON and written back unchanged, so a
document survives a load/marshal round trip without losing tool-specific data:

	doc, err := sarif.Load("results.sarif")
	if err != nil {
		return err
	}
	for _, run := range doc.Runs {
		for _, res := range run.Results {
			fmt.Println(res.RuleIDOrUnknown(), res.EffectiveLevel())
		}
	}
	data, err := sarif.Marshal(doc)

Object members are emitted in sorted key order. Values are preserved byte for
byte apart from whitespace.
*/
package sarif
