package awstags

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	"tagmapper/tags"
)

// FromCloudFormation converts stack tags, as found in
// DescribeStacksOutput.Stacks[i].Tags.
func FromCloudFormation(sdk []cfntypes.Tag) (tags.TagList, error) {
	return fromPointers(SourceCloudFormation, len(sdk), func(i int) (*string, *string) {
		return sdk[i].Key, sdk[i].Value
	})
}

// ToCloudFormation converts list into stack tags, for example for
// CreateStackInput.Tags.
func ToCloudFormation(list tags.TagList) []cfntypes.Tag {
	out := make([]cfntypes.Tag, 0, list.Len())

	for _, t := range list.All {
		out = append(out, cfntypes.Tag{
			Key:   aws.String(string(t.Key)),
			Value: aws.String(string(t.Value)),
		})
	}

	return out
}

// EqualCloudFormation is the CloudFormation counterpart of EqualS3.
func EqualCloudFormation(list tags.TagList, sdk []cfntypes.Tag) bool {
	other, err := FromCloudFormation(sdk)

	return err == nil && list.Equal(other)
}
