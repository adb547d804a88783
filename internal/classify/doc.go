// Package classify infers a coarse entity category from topic and label
// text. The category drives both provider selection and the acceptance rules
// applied to candidate images.
package classify
