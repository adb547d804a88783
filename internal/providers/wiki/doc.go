// Package wiki resolves labels through the Wikipedia REST summary API and
// the Wikidata action API. Wikipedia supplies lead images and descriptions;
// Wikidata supplies instance-of typing, portraits (P18), and logos (P154).
package wiki
