// Package awstags converts between tags.TagList and the tag types of the
// AWS SDK for Go v2. Conversions keep the SDK order and duplicates.
package awstags

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"tagmapper/tags"
)

const (
	SourceS3             = "s3"
	SourceSecretsManager = "secretsmanager"
	SourceEC2            = "ec2"
	SourceCloudFormation = "cloudformation"
)

// fromPointers is the shared conversion of SDK tags, which model both key
// and value as *string.
func fromPointers(source string, n int, at func(int) (key, value *string)) (tags.TagList, error) {
	raw := make([]tags.RawTag, 0, n)

	for i := range n {
		key, value := at(i)

		if key == nil {
			return tags.TagList{}, &tags.ExternalConversionError{
				Source: source,
				Index:  i,
				Reason: tags.ReasonKeyMissing,
			}
		}

		if value == nil {
			return tags.TagList{}, &tags.ExternalConversionError{
				Source: source,
				Index:  i,
				Key:    tags.TagKey(*key),
				Reason: tags.ReasonValueMissing,
			}
		}

		raw = append(raw, tags.NewRawTag(*key, *value))
	}

	return tags.FromSlice(raw), nil
}

// FromS3 converts S3 object or bucket tags. A tag with a nil key or value
// fails with a *tags.ExternalConversionError.
func FromS3(sdk []s3types.Tag) (tags.TagList, error) {
	return fromPointers(SourceS3, len(sdk), func(i int) (*string, *string) {
		return sdk[i].Key, sdk[i].Value
	})
}

// ToS3 converts list into S3 tags.
func ToS3(list tags.TagList) []s3types.Tag {
	out := make([]s3types.Tag, 0, list.Len())

	for _, t := range list.All {
		out = append(out, s3types.Tag{
			Key:   aws.String(string(t.Key)),
			Value: aws.String(string(t.Value)),
		})
	}

	return out
}

// ToS3Tagging wraps ToS3 for PutObjectTagging and PutBucketTagging inputs.
func ToS3Tagging(list tags.TagList) *s3types.Tagging {
	return &s3types.Tagging{TagSet: ToS3(list)}
}

// EqualS3 reports whether sdk holds exactly the tags of list in the same
// order. Tags that cannot be converted never compare equal.
func EqualS3(list tags.TagList, sdk []s3types.Tag) bool {
	other, err := FromS3(sdk)

	return err == nil && list.Equal(other)
}

// FromSecretsManager converts Secrets Manager secret tags.
func FromSecretsManager(sdk []smtypes.Tag) (tags.TagList, error) {
	return fromPointers(SourceSecretsManager, len(sdk), func(i int) (*string, *string) {
		return sdk[i].Key, sdk[i].Value
	})
}

// ToSecretsManager converts list into Secrets Manager tags, for example
// for CreateSecretInput.Tags or TagResourceInput.Tags.
func ToSecretsManager(list tags.TagList) []smtypes.Tag {
	out := make([]smtypes.Tag, 0, list.Len())

	for _, t := range list.All {
		out = append(out, smtypes.Tag{
			Key:   aws.String(string(t.Key)),
			Value: aws.String(string(t.Value)),
		})
	}

	return out
}

// EqualSecretsManager is the Secrets Manager counterpart of EqualS3.
func EqualSecretsManager(list tags.TagList, sdk []smtypes.Tag) bool {
	other, err := FromSecretsManager(sdk)

	return err == nil && list.Equal(other)
}
