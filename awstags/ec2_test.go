package awstags

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagmapper/tags"
)

func TestEC2RoundTrip(t *testing.T) {
	t.Parallel()

	owner := "ops"
	list := tags.Marshal(bucket{Name: "web-1", Versioned: true, Owner: &owner})

	sdk := ToEC2(list)
	require.Len(t, sdk, 3)
	assert.Equal(t, "Name", aws.ToString(sdk[0].Key))
	assert.Equal(t, "web-1", aws.ToString(sdk[0].Value))

	back, err := FromEC2(sdk)
	require.NoError(t, err)
	assert.True(t, list.Equal(back))
	assert.True(t, EqualEC2(list, sdk))
	assert.False(t, EqualEC2(list, sdk[:2]))

	b, err := tags.Unmarshal[bucket](back)
	require.NoError(t, err)
	assert.Equal(t, "ops", *b.Owner)
}

func TestFromEC2_NilValue(t *testing.T) {
	t.Parallel()

	sdk := []ec2types.Tag{
		{Key: aws.String("Name"), Value: aws.String("web-1")},
		{Key: aws.String("owner")},
	}

	_, err := FromEC2(sdk)

	var convErr *tags.ExternalConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, SourceEC2, convErr.Source)
	assert.Equal(t, 1, convErr.Index)
	assert.Equal(t, tags.ReasonValueMissing, convErr.Reason)
	assert.EqualError(t, err, `ec2 tag "owner": value is nil`)
	assert.ErrorIs(t, err, tags.ErrExternalConversion)
	assert.False(t, EqualEC2(tags.NewTagList(), sdk))

	_, err = FromEC2([]ec2types.Tag{{Value: aws.String("x")}})
	assert.EqualError(t, err, "ec2 tag #0: key is nil")
}

func TestToEC2Filters(t *testing.T) {
	t.Parallel()

	filters := ToEC2Filters(tags.Marshal(bucket{Name: "web-1"}))
	require.Len(t, filters, 2)

	assert.Equal(t, "tag:Name", aws.ToString(filters[0].Name))
	assert.Equal(t, []string{"web-1"}, filters[0].Values)
	assert.Equal(t, "tag:versioned", aws.ToString(filters[1].Name))
	assert.Equal(t, []string{"false"}, filters[1].Values)

	assert.Empty(t, ToEC2Filters(tags.NewTagList()))
}

func TestToEC2TagSpecification(t *testing.T) {
	t.Parallel()

	list := tags.Marshal(bucket{Name: "web-1"})

	spec := ToEC2TagSpecification(ec2types.ResourceTypeInstance, list)
	assert.Equal(t, ec2types.ResourceTypeInstance, spec.ResourceType)
	assert.True(t, EqualEC2(list, spec.Tags))

	spec = ToEC2TagSpecification(ec2types.ResourceTypeVolume, list)
	assert.Equal(t, ec2types.ResourceTypeVolume, spec.ResourceType)
}

func TestCloudFormationRoundTrip(t *testing.T) {
	t.Parallel()

	list := tags.Marshal(bucket{Name: "stack", Versioned: true})

	sdk := ToCloudFormation(list)
	require.Len(t, sdk, 2)
	assert.Equal(t, "versioned", aws.ToString(sdk[1].Key))
	assert.Equal(t, "true", aws.ToString(sdk[1].Value))

	back, err := FromCloudFormation(sdk)
	require.NoError(t, err)
	assert.True(t, list.Equal(back))
	assert.True(t, EqualCloudFormation(list, sdk))

	_, err = FromCloudFormation([]cfntypes.Tag{{Key: aws.String("Name")}})

	var convErr *tags.ExternalConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, SourceCloudFormation, convErr.Source)
	assert.Equal(t, tags.ReasonValueMissing, convErr.Reason)
	assert.EqualError(t, err, `cloudformation tag "Name": value is nil`)
}
