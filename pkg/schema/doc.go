// Package schema checks scene definitions before they are sampled.
//
// ValidateScene reports every problem it finds at once, each as a
// *ValidationError keyed by the offending field:
//
//	if err := schema.ValidateScene(scene); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// The returned error wraps the domain sentinels, so errors.Is(err,
// domain.ErrInvalidGrid) and friends keep working.
package schema
