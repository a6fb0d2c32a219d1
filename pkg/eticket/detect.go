package eticket

// Detect classifies raw by walking the registry in priority order. The first
// format whose cues match wins; Unrecognized is returned when none does.
func (p *Parser) Detect(raw RawInput) SourceFormat {
	text := detectionText(raw)
	for _, f := range p.registry.formats {
		if f.Matches(text) {
			return f.Source()
		}
	}
	return Unrecognized
}
