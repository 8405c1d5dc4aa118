package domain

// ParsedContent is the structural shape of one retrieved content blob,
// as determined by the classifier. The sum is closed: every variant is
// defined here and render code switches exhaustively over it.
type ParsedContent interface {
	parsedContent()
}

// SingleTopic is content that decoded to exactly one study topic,
// either a one-element topic array or a bare title+content object.
type SingleTopic struct {
	Topic StudyTopic
}

// TopicList is content that decoded to a topic array with any number
// of elements other than one. An empty list is a valid "no topics"
// state, not an error.
type TopicList struct {
	Topics []StudyTopic
}

// RawJSON is content that parsed as JSON but matched neither topic shape.
type RawJSON struct {
	Value any
}

// Prose is content that is not JSON, segmented into display blocks.
type Prose struct {
	Blocks []Block
}

func (SingleTopic) parsedContent() {}
func (TopicList) parsedContent()   {}
func (RawJSON) parsedContent()     {}
func (Prose) parsedContent()       {}

// BlockKind distinguishes prose display blocks
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBullet
)

// Block is one displayable unit of segmented prose
type Block struct {
	Kind BlockKind
	Text string
}

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockBullet:
		return "bullet"
	default:
		return "paragraph"
	}
}
