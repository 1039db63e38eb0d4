package awstags

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"tagmapper/tags"
)

// ec2FilterPrefix selects resources by tag in Describe* filters.
const ec2FilterPrefix = "tag:"

// FromEC2 converts EC2 resource tags, as returned by DescribeInstances or
// DescribeTags.
func FromEC2(sdk []ec2types.Tag) (tags.TagList, error) {
	return fromPointers(SourceEC2, len(sdk), func(i int) (*string, *string) {
		return sdk[i].Key, sdk[i].Value
	})
}

// ToEC2 converts list into EC2 tags, for example for CreateTagsInput.Tags.
func ToEC2(list tags.TagList) []ec2types.Tag {
	out := make([]ec2types.Tag, 0, list.Len())

	for _, t := range list.All {
		out = append(out, ec2types.Tag{
			Key:   aws.String(string(t.Key)),
			Value: aws.String(string(t.Value)),
		})
	}

	return out
}

// EqualEC2 is the EC2 counterpart of EqualS3.
func EqualEC2(list tags.TagList, sdk []ec2types.Tag) bool {
	other, err := FromEC2(sdk)

	return err == nil && list.Equal(other)
}

// ToEC2Filters turns every tag into a "tag:<key>" filter matching its
// value. EC2 combines filters with AND, so the result selects resources
// carrying all tags of list.
func ToEC2Filters(list tags.TagList) []ec2types.Filter {
	out := make([]ec2types.Filter, 0, list.Len())

	for _, t := range list.All {
		out = append(out, ec2types.Filter{
			Name:   aws.String(ec2FilterPrefix + string(t.Key)),
			Values: []string{string(t.Value)},
		})
	}

	return out
}

// ToEC2TagSpecification tags a resource at creation time, for example in
// RunInstancesInput.TagSpecifications with ec2types.ResourceTypeInstance.
func ToEC2TagSpecification(resourceType ec2types.ResourceType, list tags.TagList) ec2types.TagSpecification {
	return ec2types.TagSpecification{
		ResourceType: resourceType,
		Tags:         ToEC2(list),
	}
}
